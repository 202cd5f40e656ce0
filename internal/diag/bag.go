package diag

import (
	"sort"

	"svfront/internal/sourcemap"
)

// Bag is a capped, append-only collection of Diagnostics (component B): once
// max is reached, further Add calls are rejected rather than growing without
// bound.
type Bag struct {
	items []Diagnostic
	max   uint16
}

func NewBag(max int) *Bag {
	return &Bag{
		items: make([]Diagnostic, 0, max),
		max:   uint16(max),
	}
}

// Add appends d, honoring the cap. Returns false if d was dropped because the
// cap was already reached.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= int(b.max) {
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Cap() uint16 {
	return b.max
}

// HasErrors reports whether any diagnostic is at SevError or above.
func (b *Bag) HasErrors() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevError {
			return true
		}
	}
	return false
}

// HasWarnings reports whether any diagnostic is at SevWarning or above.
func (b *Bag) HasWarnings() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevWarning {
			return true
		}
	}
	return false
}

func (b *Bag) Len() int {
	return len(b.items)
}

// Items returns a read-only view of the collected diagnostics. Callers must
// not mutate the returned slice; it aliases the Bag's backing array.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Merge appends other's diagnostics, raising max if needed to hold them all.
func (b *Bag) Merge(other *Bag) {
	newTotal := len(b.items) + len(other.items)
	if uint16(newTotal) > b.max {
		b.max = uint16(newTotal)
	}
	b.items = append(b.items, other.items...)
}

// Sort orders diagnostics by (buffer, start, end) ascending, then severity
// descending, then by the code's String() text (family prefix, then
// number) ascending, giving deterministic, stable output
// regardless of the order in which phases raised them.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.Primary.Buffer != dj.Primary.Buffer {
			return di.Primary.Buffer < dj.Primary.Buffer
		}
		if di.Primary.Start != dj.Primary.Start {
			return di.Primary.Start < dj.Primary.Start
		}
		if di.Primary.End != dj.Primary.End {
			return di.Primary.End < dj.Primary.End
		}
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		return di.Code.String() < dj.Code.String()
	})
}

// bagDedupKey identifies a diagnostic's identity for Dedup, the same fields
// DedupReporter keys a live stream of diagnostics on, so a Bag collected
// without going through a DedupReporter (merged from several phases, or
// read back from a disk cache) can still be deduplicated after the fact.
type bagDedupKey struct {
	code  Code
	buf   sourcemap.BufferID
	start uint32
	end   uint32
}

// Dedup removes duplicate diagnostics sharing the same Code and Primary
// span, keeping the first occurrence.
func (b *Bag) Dedup() {
	seen := make(map[bagDedupKey]bool, len(b.items))
	newitems := make([]Diagnostic, 0, len(b.items))
	for _, d := range b.items {
		key := bagDedupKey{code: d.Code, buf: d.Primary.Buffer, start: d.Primary.Start, end: d.Primary.End}
		if seen[key] {
			continue
		}
		seen[key] = true
		newitems = append(newitems, d)
	}
	b.items = newitems
}

// Filter keeps only the diagnostics for which keep returns true, in place.
// Used by the `elaborate`/`diagnose` subcommands' `--no-warnings` flag to
// drop everything below SevError before rendering.
func (b *Bag) Filter(keep func(*Diagnostic) bool) {
	newitems := b.items[:0]
	for i := range b.items {
		if keep(&b.items[i]) {
			newitems = append(newitems, b.items[i])
		}
	}
	b.items = newitems
}

// Transform replaces every diagnostic with the result of applying fn.
// Used by `--warnings-as-errors` to promote every SevWarning to SevError;
// it keeps the bag's existing order and does not re-sort.
func (b *Bag) Transform(fn func(Diagnostic) Diagnostic) {
	newitems := b.items[:0]
	for _, d := range b.items {
		newitems = append(newitems, fn(d))
	}
	b.items = newitems
}
