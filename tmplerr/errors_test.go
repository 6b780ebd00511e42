package tmplerr

import (
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"
)

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "undefined variable: foo", (&UndefinedVariable{Name: "foo"}).Error())
	assert.Equal(t, "missing parameter: bar", (&MissingParameter{Name: "bar"}).Error())
	assert.Equal(t, "no default branch: baz", (&NoDefaultBranch{Param: "baz"}).Error())
	assert.Equal(t, "cycle detected: qux", (&CycleDetected{Name: "qux"}).Error())
}

func TestWrapParsePreservesCause(t *testing.T) {
	cause := &UndefinedVariable{Name: "h"}
	err := WrapParse("key", "bad reference", "{h}", Pos{Line: 1, Column: 1}, cause)

	var pe *ParseError
	require.True(t, xerrors.As(err, &pe))
	assert.Equal(t, "key", pe.Key)

	var undef *UndefinedVariable
	require.True(t, xerrors.As(err, &undef))
	assert.Equal(t, "h", undef.Name)
}

func TestFormatPlainWithoutSource(t *testing.T) {
	err := WrapParse("key", "bad thing", "", Pos{}, nil)
	assert.Equal(t, err.Error(), Format(err, false))
}

func TestFormatWithSnippet(t *testing.T) {
	err := WrapParse("key", "unterminated brace", "{{a}", Pos{Line: 1, Column: 4}, nil)
	out := Format(err, false)
	assert.Contains(t, out, "-->")
	assert.Contains(t, out, "{{a}")
	assert.Contains(t, out, "^")
}

func TestFormatColoredEmbedsEscapeCodes(t *testing.T) {
	old := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = old }()

	err := WrapParse("key", "unterminated brace", "{{a}", Pos{Line: 1, Column: 4}, nil)
	out := Format(err, true)
	assert.Contains(t, out, "\x1b[")
}
