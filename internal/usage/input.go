package usage

import "fmt"

// InvalidEscapeCharacter is returned when a backslash has nothing left to escape.
func InvalidEscapeCharacter(position int) *Error {
	return &Error{
		Kind:     ErrInvalidEscapeCharacter,
		Message:  fmt.Sprintf("invalid escape character at position %d", position),
		Position: position,
	}
}

// UnclosedQuote is returned when a quoted token is not terminated.
func UnclosedQuote(quote rune, position int) *Error {
	return &Error{
		Kind:     ErrUnclosedQuote,
		Message:  fmt.Sprintf("unclosed quote %c starting at position %d", quote, position),
		Token:    string(quote),
		Position: position,
	}
}

// ExpectedWhitespace is returned when two tokens are not separated by a space.
func ExpectedWhitespace(position int) *Error {
	return &Error{
		Kind:     ErrExpectedWhitespace,
		Message:  fmt.Sprintf("expected whitespace at position %d", position),
		Position: position,
	}
}
