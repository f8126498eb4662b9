// Package stream provides a cursor-based reader over a single command line.
//
// The grammar is deliberately small: a space separates tokens, ' and " open a
// quoted token closed by the same quote, and a backslash escapes the next
// character inside or outside quotes. The cursor only moves forward except
// through Restore, which is what the dispatcher uses to backtrack.
package stream

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/footprint-tools/verb/internal/usage"
)

const (
	separator = ' '
	escape    = '\\'
)

// Stream is a reader over one immutable command line.
type Stream struct {
	input string
	pos   int
}

// Mark is a saved cursor position returned by Snapshot.
type Mark int

// New creates a Stream positioned at the start of input.
func New(input string) *Stream {
	return &Stream{input: input}
}

// Input returns the full backing text.
func (s *Stream) Input() string {
	return s.input
}

// Position returns the current byte offset of the cursor.
func (s *Stream) Position() int {
	return s.pos
}

// Consumed returns the text before the cursor.
func (s *Stream) Consumed() string {
	return s.input[:s.pos]
}

// Remaining returns the text after the cursor, unmodified.
func (s *Stream) Remaining() string {
	return s.input[s.pos:]
}

// Snapshot saves the cursor so a failed branch can be undone.
func (s *Stream) Snapshot() Mark {
	return Mark(s.pos)
}

// Restore moves the cursor back to a saved position.
func (s *Stream) Restore(m Mark) {
	if int(m) < 0 || int(m) > len(s.input) {
		return
	}
	s.pos = int(m)
}

// CanRead reports whether any character is left, separators included.
func (s *Stream) CanRead() bool {
	return s.pos < len(s.input)
}

// HasMore reports whether another token is left to read.
func (s *Stream) HasMore() bool {
	for i := s.pos; i < len(s.input); i++ {
		if s.input[i] != separator {
			return true
		}
	}
	return false
}

// Peek returns the character under the cursor without consuming it.
func (s *Stream) Peek() (rune, bool) {
	if !s.CanRead() {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(s.input[s.pos:])
	return r, true
}

// Consume advances past the character under the cursor and returns it.
func (s *Stream) Consume() (rune, bool) {
	if !s.CanRead() {
		return 0, false
	}
	r, size := utf8.DecodeRuneInString(s.input[s.pos:])
	s.pos += size
	return r, true
}

// SkipWhitespace moves the cursor past any separators.
func (s *Stream) SkipWhitespace() {
	for s.pos < len(s.input) && s.input[s.pos] == separator {
		s.pos++
	}
}

// ReadUnquotedWord reads characters up to the next unescaped separator.
func (s *Stream) ReadUnquotedWord() (string, error) {
	s.SkipWhitespace()
	var b strings.Builder
	for s.CanRead() {
		r, _ := s.Peek()
		if r == separator {
			break
		}
		s.Consume()
		if r == escape {
			next, ok := s.Consume()
			if !ok {
				return "", usage.InvalidEscapeCharacter(s.pos - 1)
			}
			b.WriteRune(next)
			continue
		}
		b.WriteRune(r)
	}
	return b.String(), nil
}

// ReadString reads a quoted token if the next character is a quote and an
// unquoted word otherwise.
func (s *Stream) ReadString() (string, error) {
	s.SkipWhitespace()
	r, ok := s.Peek()
	if !ok {
		return "", nil
	}
	if !IsQuote(r) {
		return s.ReadUnquotedWord()
	}
	return s.readQuoted(r)
}

func (s *Stream) readQuoted(quote rune) (string, error) {
	start := s.pos
	s.Consume()
	var b strings.Builder
	for {
		r, ok := s.Consume()
		if !ok {
			return "", usage.UnclosedQuote(quote, start)
		}
		switch r {
		case escape:
			next, ok := s.Consume()
			if !ok {
				return "", usage.InvalidEscapeCharacter(s.pos - 1)
			}
			b.WriteRune(next)
		case quote:
			if next, ok := s.Peek(); ok && next != separator {
				return "", usage.ExpectedWhitespace(s.pos)
			}
			return b.String(), nil
		default:
			b.WriteRune(r)
		}
	}
}

// ReadRemaining consumes and returns everything left, without unescaping.
func (s *Stream) ReadRemaining() string {
	s.SkipWhitespace()
	rest := s.input[s.pos:]
	s.pos = len(s.input)
	return rest
}

// ReadInt reads a token and parses it as a base-10 integer.
func (s *Stream) ReadInt() (int64, error) {
	start := s.tokenStart()
	token, err := s.ReadString()
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(token, 10, 64)
	if err != nil {
		return 0, usage.InvalidInteger(token).At(start)
	}
	return n, nil
}

// ReadFloat reads a token and parses it as a decimal number.
func (s *Stream) ReadFloat() (float64, error) {
	start := s.tokenStart()
	token, err := s.ReadString()
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, usage.InvalidDecimal(token).At(start)
	}
	return f, nil
}

// ReadBool reads a token and parses it as a boolean. Accepts true/false,
// yes/no and on/off in any case.
func (s *Stream) ReadBool() (bool, error) {
	start := s.tokenStart()
	token, err := s.ReadString()
	if err != nil {
		return false, err
	}
	switch strings.ToLower(token) {
	case "true", "yes", "on":
		return true, nil
	case "false", "no", "off":
		return false, nil
	}
	return false, usage.InvalidBoolean(token).At(start)
}

// tokenStart returns the offset of the next token without moving the cursor.
func (s *Stream) tokenStart() int {
	i := s.pos
	for i < len(s.input) && s.input[i] == separator {
		i++
	}
	return i
}

// TokenStart returns the offset at which the next token begins.
func (s *Stream) TokenStart() int {
	return s.tokenStart()
}

// IsQuote reports whether r opens a quoted token.
func IsQuote(r rune) bool {
	return r == '"' || r == '\''
}

// Tokenize splits input into tokens using the quoting grammar.
func Tokenize(input string) ([]string, error) {
	s := New(input)
	var tokens []string
	for s.HasMore() {
		token, err := s.ReadString()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
	}
	return tokens, nil
}
