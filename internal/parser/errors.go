package parser

import "fmt"

// ParseError describes why a classified line could not be extracted. It is
// a soft failure carried as a value: callers count it and move on.
type ParseError struct {
	Kind    LineKind
	Field   string
	Message string
	Line    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s line, field %s: %s", e.Kind, e.Field, e.Message)
}
