package parser

import "strings"

// countLeadingBraces returns the length of the maximal run of consecutive
// '{' characters starting at the beginning of s.
func countLeadingBraces(s string) int {
	n := 0
	for n < len(s) && s[n] == '{' {
		n++
	}
	return n
}

// findClosingRun finds the first occurrence, at or after offset, of a
// run of exactly n consecutive '}' characters that is not itself
// preceded or followed by another '}' (i.e. exactly n, no more, no
// fewer). It returns the byte index of the first '}' in that run, or -1
// if no such run exists.
func findClosingRun(s string, n int) int {
	for i := 0; i+n <= len(s); i++ {
		if s[i] != '}' {
			continue
		}
		// Count the run of '}' starting at i.
		j := i
		for j < len(s) && s[j] == '}' {
			j++
		}
		runLen := j - i
		if runLen == n {
			return i
		}
		// A run shorter or longer than n is not a terminator, and no
		// part of it is one either: the escape rule needs the first run
		// of EXACTLY n. Per the worked examples (e.g. "{{{ {{a} }}}" =>
		// n=3 skips the single '}' after "a" and finds the "}}}" at the
		// end), we keep scanning past the whole run.
		i = j - 1 // loop's i++ advances past the whole run
	}
	return -1
}

// extractBalancedBrace implements the balanced-brace escape subroutine
// (spec §4.1): input must begin with a run of n>=2 '{' characters; it
// consumes that run, searches forward for the first run of exactly n
// '}' characters, trims ASCII whitespace from the content between them,
// and returns (content, rest, ok). rest is the input immediately after
// the consumed closing run.
func extractBalancedBrace(input string) (content string, rest string, ok bool) {
	n := countLeadingBraces(input)
	if n < 2 {
		return "", input, false
	}
	body := input[n:]
	closeIdx := findClosingRun(body, n)
	if closeIdx < 0 {
		return "", input, false
	}
	raw := body[:closeIdx]
	rest = body[closeIdx+n:]
	return strings.TrimFunc(raw, isASCIISpace), rest, true
}
