package jsonfield

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/aretw0/scenarist/pkg/domain"
)

var (
	// DefaultMaxFieldSize is 64KB.
	DefaultMaxFieldSize = 64 << 10
	// EnvMaxFieldSize overrides DefaultMaxFieldSize.
	EnvMaxFieldSize = "SCENARIST_MAX_FIELD_SIZE"
)

var (
	ErrFieldTooLarge = errors.New("field exceeds maximum allowed size")
	ErrInvalidUTF8   = errors.New("field contains invalid UTF-8 sequences")
)

// Sanitize prepares a field received over the wire for formatting.
// Text over the size limit is rejected with ErrFieldTooLarge. Text that is
// not UTF-8 is rejected with a *domain.ParseError locating the first bad
// byte, which wraps ErrInvalidUTF8. Control characters other than newline,
// tab and carriage return are dropped; the author's layout is kept.
func Sanitize(text string) (string, error) {
	if limit := maxFieldSize(); len(text) > limit {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrFieldTooLarge, len(text), limit)
	}

	// b stays nil until the first dropped rune, so clean text is returned as is.
	var b *strings.Builder
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if r == utf8.RuneError && size == 1 {
			return "", badEncoding(text, i)
		}
		switch {
		case droppable(r):
			if b == nil {
				b = new(strings.Builder)
				b.Grow(len(text))
				b.WriteString(text[:i])
			}
		case b != nil:
			b.WriteString(text[i : i+size])
		}
		i += size
	}
	if b == nil {
		return text, nil
	}
	return b.String(), nil
}

func badEncoding(text string, at int) *domain.ParseError {
	line, col := position([]byte(text), int64(at))
	return &domain.ParseError{
		Msg:    fmt.Sprintf("invalid UTF-8 byte 0x%02x", text[at]),
		Offset: int64(at),
		Line:   line,
		Column: col,
		Err:    ErrInvalidUTF8,
	}
}

func droppable(r rune) bool {
	switch r {
	case '\n', '\t', '\r':
		return false
	}
	return unicode.IsControl(r)
}

func maxFieldSize() int {
	if val := os.Getenv(EnvMaxFieldSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxFieldSize
}
