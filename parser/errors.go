package parser

// ParseError is a spec-defined parse error: recoverable by definition,
// collected while parsing and returned to the caller alongside the
// finished tree. Parse errors never interrupt parsing.
type ParseError struct {
	Message string
}

func (e ParseError) Error() string {
	return e.Message
}
