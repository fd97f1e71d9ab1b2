package sanitizer

import (
	"rentpilot/pkg/calendar"
	"strings"
	"unicode"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)

	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

func NormalizeName(name string) string {
	return TrimAndNormalize(name)
}

// NormalizeNameForComparison folds case so "Summer  Peak" and "summer peak"
// compare equal.
func NormalizeNameForComparison(name string) string {
	return Pipeline{TrimAndNormalize, strings.ToLower}.Apply(name)
}

func NormalizeMonthDay(s string) string {
	return string(calendar.NormalizeMonthDay(s))
}

func NormalizeMultiplier(s string) string {
	s = strings.TrimSpace(s)
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	return s
}

func NormalizeSeasonType(s string) string {
	return Pipeline{strings.TrimSpace, strings.ToLower}.Apply(s)
}
