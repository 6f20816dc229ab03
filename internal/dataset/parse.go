package dataset

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
)

// ErrSyntax is returned for a token that is not an unsigned integer.
var ErrSyntax = errors.New("invalid integer")

// ErrRange is returned for an integer that does not fit in 32 bits.
var ErrRange = errors.New("integer out of range")

// ParseError locates a bad token in an integer list.
type ParseError struct {
	Line   int    // 1-based line of the token
	Offset int64  // byte offset of the token from the start of the input
	Token  string // the offending token, truncated
	Err    error  // ErrSyntax or ErrRange
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d, offset %d: %v %q", e.Line, e.Offset, e.Err, e.Token)
}

func (e *ParseError) Unwrap() error { return e.Err }

const maxTokenEcho = 32

// ParseInts reads comma or whitespace separated unsigned integers from r.
// Empty fields between separators are skipped.
func ParseInts(r io.Reader) ([]uint32, error) {
	br := bufio.NewReaderSize(r, 64<<10)

	var (
		out     []uint32
		line    = 1
		offset  int64
		start   int64
		inTok   bool
		value   uint64
		bad     error
		tok     []byte
		tokLine int
	)

	flush := func() error {
		if !inTok {
			return nil
		}
		inTok = false
		if bad != nil {
			return &ParseError{Line: tokLine, Offset: start, Token: string(tok), Err: bad}
		}
		out = append(out, uint32(value))
		return nil
	}

	for {
		c, err := br.ReadByte()
		if err == io.EOF {
			if err := flush(); err != nil {
				return nil, err
			}
			return out, nil
		}
		if err != nil {
			return nil, err
		}

		switch {
		case c == ',' || c == ' ' || c == '\t' || c == '\r' || c == '\n':
			if err := flush(); err != nil {
				return nil, err
			}
			if c == '\n' {
				line++
			}
		default:
			if !inTok {
				inTok, start, tokLine = true, offset, line
				value, bad, tok = 0, nil, tok[:0]
			}
			if len(tok) < maxTokenEcho {
				tok = append(tok, c)
			}
			switch {
			case bad != nil:
			case c < '0' || c > '9':
				bad = ErrSyntax
			default:
				value = value*10 + uint64(c-'0')
				if value > math.MaxUint32 {
					bad = ErrRange
				}
			}
		}
		offset++
	}
}
