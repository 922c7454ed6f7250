package graphref

import (
	"fmt"
	"regexp"
)

// DefaultVariant is used when a graph ref omits the @variant part
const DefaultVariant = "current"

var graphRefRegexp = regexp.MustCompile(`^([a-zA-Z][a-zA-Z0-9_-]{0,63})(?:@([a-zA-Z0-9/._-]{0,63}))?$`)

// GraphRef names a published graph variant in the registry
type GraphRef struct {
	Name    string
	Variant string
}

// ParseError is returned when a string is not a valid graph ref
type ParseError struct {
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf(
		"%q is not a valid graph ref, expected <graph id>@<variant> where the graph id starts with a letter and contains only letters, digits, '_' or '-'",
		e.Input,
	)
}

// Parse parses "name" or "name@variant"
func Parse(s string) (GraphRef, error) {
	matches := graphRefRegexp.FindStringSubmatch(s)
	if matches == nil {
		return GraphRef{}, &ParseError{Input: s}
	}

	variant := matches[2]
	if variant == "" {
		variant = DefaultVariant
	}

	return GraphRef{Name: matches[1], Variant: variant}, nil
}

func (g GraphRef) String() string {
	return g.Name + "@" + g.Variant
}
