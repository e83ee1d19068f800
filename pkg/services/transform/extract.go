package transform

import (
	"regexp"
	"strings"

	"github.com/spf13/cast"
)

var (
	whitespaceRe  = regexp.MustCompile(`\s+`)
	parenthesesRe = regexp.MustCompile(`\(([^)]+)\)`)
)

// Channel is the descriptor derived from a free-text accueil field such as
// "BOUTIQUE CENTRE (RAVT01)".
type Channel struct {
	// SubUnit is the content of the first parenthesized group, "" when none.
	SubUnit string
	// Label is the remaining text without any parenthesized group.
	Label string
}

// ExtractChannel splits an accueil value into its label and sub-unit code.
func ExtractChannel(v any) Channel {
	if v == nil {
		return Channel{}
	}
	text := collapseSpaces(cast.ToString(v))
	if text == "" {
		return Channel{}
	}

	m := parenthesesRe.FindStringSubmatch(text)
	if m == nil {
		return Channel{Label: text}
	}

	label := collapseSpaces(parenthesesRe.ReplaceAllString(text, ""))
	label = strings.TrimSpace(strings.Trim(label, "()"))

	return Channel{
		SubUnit: strings.TrimSpace(m[1]),
		Label:   label,
	}
}

func collapseSpaces(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}
