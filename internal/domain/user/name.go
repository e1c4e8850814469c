package user

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var nameRegex = regexp.MustCompile(`^[\p{L}\s\-'\.]+$`)

var titleCaser = cases.Title(language.Und)

// Name holds a person's first and last name, trimmed and title-cased.
type Name struct {
	first string
	last  string
}

// NewName validates and normalizes a first/last name pair.
func NewName(first, last string) (*Name, error) {
	first = normalizeNamePart(first)
	last = normalizeNamePart(last)

	if first == "" || last == "" {
		return nil, fmt.Errorf("first and last name are required")
	}
	if len(first) > 100 || len(last) > 100 {
		return nil, fmt.Errorf("name cannot exceed 100 characters")
	}
	if !nameRegex.MatchString(first) || !nameRegex.MatchString(last) {
		return nil, fmt.Errorf("name contains invalid characters")
	}

	return &Name{first: first, last: last}, nil
}

func normalizeNamePart(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return ""
	}
	return titleCaser.String(strings.ToLower(s))
}

// First returns the first name.
func (n *Name) First() string { return n.first }

// Last returns the last name.
func (n *Name) Last() string { return n.last }

// Full returns "First Last".
func (n *Name) Full() string {
	return n.first + " " + n.last
}
