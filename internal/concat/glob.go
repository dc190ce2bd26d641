package concat

import "strings"

const (
	bracketOpen       = '['
	bracketClose      = ']'
	shellNegation     = '!'
	matchNegation     = '^'
	patternEscapeRune = '\\'
)

// translateShellGlob rewrites the shell negated class "[!...]" into the "[^...]" form that
// filepath.Match understands. Everything else is passed through unchanged.
func translateShellGlob(pattern string) string {
	if !strings.ContainsRune(pattern, shellNegation) {
		return pattern
	}
	var builder strings.Builder
	builder.Grow(len(pattern))
	insideClass := false
	runes := []rune(pattern)
	for index := 0; index < len(runes); index++ {
		current := runes[index]
		switch {
		case current == patternEscapeRune && index+1 < len(runes):
			builder.WriteRune(current)
			index++
			builder.WriteRune(runes[index])
		case !insideClass && current == bracketOpen:
			insideClass = true
			builder.WriteRune(current)
			if index+1 < len(runes) && runes[index+1] == shellNegation {
				builder.WriteRune(matchNegation)
				index++
			}
		case insideClass && current == bracketClose:
			insideClass = false
			builder.WriteRune(current)
		default:
			builder.WriteRune(current)
		}
	}
	return builder.String()
}
