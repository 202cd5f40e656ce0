package lexer

import (
	"svfront/internal/sourcemap"
	"testing"
)

func TestSequentialReading(t *testing.T) {
	sm := sourcemap.New()
	id := sm.AddVirtual("test.sv", []byte("a\nb"))
	cursor := NewCursor(sm.Get(id))

	if cursor.EOF() {
		t.Error("expected not EOF at start")
	}
	if cursor.Peek() != 'a' {
		t.Errorf("expected peek 'a', got %c", cursor.Peek())
	}
	if b := cursor.Bump(); b != 'a' {
		t.Errorf("expected bump 'a', got %c", b)
	}
	if cursor.Peek() != '\n' {
		t.Errorf("expected peek '\\n', got %c", cursor.Peek())
	}
	cursor.Bump()
	if cursor.Peek() != 'b' {
		t.Errorf("expected peek 'b', got %c", cursor.Peek())
	}
	cursor.Bump()
	if !cursor.EOF() {
		t.Error("expected EOF at end")
	}
	if cursor.Peek() != 0 {
		t.Errorf("expected peek 0 at EOF, got %c", cursor.Peek())
	}
}

func TestPeek2AndPeek3(t *testing.T) {
	sm := sourcemap.New()
	id := sm.AddVirtual("test.sv", []byte("abc"))
	cursor := NewCursor(sm.Get(id))

	b0, b1, ok := cursor.Peek2()
	if !ok || b0 != 'a' || b1 != 'b' {
		t.Fatalf("Peek2 = (%c, %c, %v), want ('a', 'b', true)", b0, b1, ok)
	}
	c0, c1, c2, ok := cursor.Peek3()
	if !ok || c0 != 'a' || c1 != 'b' || c2 != 'c' {
		t.Fatalf("Peek3 = (%c, %c, %c, %v), want ('a', 'b', 'c', true)", c0, c1, c2, ok)
	}

	cursor.Bump()
	cursor.Bump()
	cursor.Bump()
	if _, _, ok := cursor.Peek2(); ok {
		t.Error("expected Peek2 to fail at end")
	}
}

func TestSpanFromResolve(t *testing.T) {
	sm := sourcemap.New()
	id := sm.AddVirtual("test.sv", []byte("αβ\nγ"))
	cursor := NewCursor(sm.Get(id))

	mark := cursor.Mark()
	cursor.Bump() // first byte of α
	cursor.Bump() // second byte of α
	span := cursor.SpanFrom(mark)
	if span.Start != 0 || span.End != 2 {
		t.Errorf("span = (%d, %d), want (0, 2)", span.Start, span.End)
	}

	start, end := sm.Resolve(span)
	if start != (sourcemap.LineCol{Line: 1, Col: 1}) {
		t.Errorf("start = %+v, want line 1 col 1", start)
	}
	if end != (sourcemap.LineCol{Line: 1, Col: 3}) {
		t.Errorf("end = %+v, want line 1 col 3 (columns count bytes)", end)
	}
}

func TestEatAndReset(t *testing.T) {
	sm := sourcemap.New()
	id := sm.AddVirtual("test.sv", []byte("a\nb"))
	cursor := NewCursor(sm.Get(id))

	if !cursor.Eat('a') {
		t.Error("expected Eat('a') to succeed")
	}
	if cursor.Eat('x') {
		t.Error("expected Eat('x') to fail when current char is '\\n'")
	}
	mark := cursor.Mark()
	cursor.Bump()
	cursor.Bump()
	if !cursor.EOF() {
		t.Error("expected EOF after consuming the buffer")
	}
	cursor.Reset(mark)
	if cursor.Peek() != '\n' {
		t.Errorf("expected peek '\\n' after reset, got %c", cursor.Peek())
	}
}
