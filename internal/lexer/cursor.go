package lexer

import (
	"fmt"

	"svfront/internal/sourcemap"

	"fortio.org/safecast"
)

// Cursor is a byte position within a single sourcemap.Buffer.
type Cursor struct {
	Buf   *sourcemap.Buffer
	Off   uint32
	Limit uint32
}

// NewCursor creates a cursor positioned at the start of buf.
func NewCursor(buf *sourcemap.Buffer) Cursor {
	limit, err := safecast.Conv[uint32](len(buf.Content))
	if err != nil {
		panic(fmt.Errorf("lexer: buffer content length overflow: %w", err))
	}
	return Cursor{Buf: buf, Off: 0, Limit: limit}
}

func (c *Cursor) EOF() bool {
	return c.Off >= c.Limit
}

func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.Buf.Content[c.Off]
}

func (c *Cursor) Peek2() (b0, b1 byte, ok bool) {
	if c.Off+1 >= c.Limit {
		return 0, 0, false
	}
	return c.Buf.Content[c.Off], c.Buf.Content[c.Off+1], true
}

func (c *Cursor) Peek3() (b0, b1, b2 byte, ok bool) {
	if c.Off+2 >= c.Limit {
		return 0, 0, 0, false
	}
	return c.Buf.Content[c.Off], c.Buf.Content[c.Off+1], c.Buf.Content[c.Off+2], true
}

func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.Buf.Content[c.Off]
	c.Off++
	return b
}

// Mark is a saved cursor offset, used to compute a Span for the text read
// since it was taken.
type Mark uint32

func (c *Cursor) Mark() Mark {
	return Mark(c.Off)
}

// SpanFrom builds the Span running from m to the cursor's current offset.
func (c *Cursor) SpanFrom(m Mark) sourcemap.Span {
	return sourcemap.Span{
		Buffer: c.Buf.ID,
		Start:  uint32(m),
		End:    c.Off,
	}
}

func (c *Cursor) Reset(m Mark) {
	c.Off = uint32(m)
}

// Eat consumes the next byte if it equals b.
func (c *Cursor) Eat(b byte) bool {
	if !c.EOF() && c.Buf.Content[c.Off] == b {
		c.Off++
		return true
	}
	return false
}
