package sourcemap

import (
	"fmt"
)

// Span is a canonical (buffer, offset) byte range: Start inclusive, End
// exclusive.
type Span struct {
	Buffer BufferID
	Start  uint32
	End    uint32
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.Buffer, s.Start, s.End)
}

// Cover returns the smallest span covering both s and other. If the spans
// belong to different buffers, s is returned unchanged.
func (s Span) Cover(other Span) Span {
	if s.Buffer != other.Buffer {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

func (s Span) ShiftLeft(n uint32) Span {
	return Span{
		Buffer: s.Buffer,
		Start:  s.Start - n,
		End:    s.End - n,
	}
}

func (s Span) ShiftRight(n uint32) Span {
	return Span{
		Buffer: s.Buffer,
		Start:  s.Start + n,
		End:    s.End + n,
	}
}
