package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractBalancedBrace(t *testing.T) {
	cases := map[string]string{
		"{{ a   }}":             "a",
		"{{{a}}}":               "a",
		"{{{{  a  }}}}":         "a",
		"{{    {a}    }}":       "{a}",
		"{{{    {{a}}    }}}":   "{{a}}",
		"{{{    {{ a }}    }}}": "{{ a }}",
		"{{{ {{a} }}}":          "{{a}",
	}
	for input, expected := range cases {
		t.Run(input, func(t *testing.T) {
			content, _, ok := extractBalancedBrace(input)
			if !assert.True(t, ok) {
				return
			}
			assert.Equal(t, expected, content)
		})
	}
}

func TestExtractBalancedBraceFailure(t *testing.T) {
	_, rest, ok := extractBalancedBrace("{{a}")
	assert.False(t, ok)
	assert.Equal(t, "{{a}", rest)
}

func TestExtractBalancedBraceConsumesRest(t *testing.T) {
	content, rest, ok := extractBalancedBrace("{{ a }} trailing")
	assert.True(t, ok)
	assert.Equal(t, "a", content)
	assert.Equal(t, " trailing", rest)
}
