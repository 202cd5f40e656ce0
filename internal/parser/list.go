package parser

import (
	"svfront/internal/diag"
	"svfront/internal/syntax"
	"svfront/internal/token"
)

// ItemSpec is the four-part contract every separated- and plain-list parse
// in this package is built from (§4.G): isPossibleItem recognizes a token
// that can start an item, isEndOfList recognizes a token that legally
// closes the list, expectedCode/expectedMsg name the diagnostic raised
// when the current token matches neither, and parseItem consumes one item.
type ItemSpec struct {
	IsPossibleItem func(token.Kind) bool
	IsEndOfList    func(token.Kind) bool
	ExpectedCode   diag.Code
	ExpectedMsg    string
	ParseItem      func() (syntax.NodeID, bool)
}

// parseItemSequence repeatedly applies spec.ParseItem until isEndOfList or
// EOF, with no separator between items (a module's member list, a
// statement block's body). On a token matching neither predicate it
// diagnoses, skips forward to the next delimiter/item-start/end-of-list
// token, wraps what it skipped in a KindError node, and continues.
func (p *Parser) parseItemSequence(spec ItemSpec) []syntax.NodeID {
	var items []syntax.NodeID
	for {
		k := p.peek().Kind
		if k == token.EOF || spec.IsEndOfList(k) {
			return items
		}
		if spec.IsPossibleItem(k) {
			id, ok := spec.ParseItem()
			if ok {
				items = append(items, id)
				continue
			}
		}
		if skip := p.recover(spec); skip.IsValid() {
			items = append(items, skip)
			continue
		}
		return items
	}
}

// parseSeparatedList is parseItemSequence's comma-separated counterpart
// (port lists, argument lists, parameter lists): items alternate with a
// single delimiter token, and a trailing delimiter is tolerated. The list
// stops in front of an isEndOfList token (a closing paren or bracket) or
// at the first item not followed by a delimiter; the caller consumes the
// closing token.
func (p *Parser) parseSeparatedList(delimiter token.Kind, spec ItemSpec) (items, delimiters []syntax.NodeID) {
	if spec.IsEndOfList(p.peek().Kind) {
		return nil, nil
	}
	for {
		k := p.peek().Kind
		if spec.IsPossibleItem(k) {
			id, ok := spec.ParseItem()
			if ok {
				items = append(items, id)
			}
		} else if skip := p.recover(spec); skip.IsValid() {
			items = append(items, skip)
		} else {
			return items, delimiters
		}
		if p.at(delimiter) {
			delimiters = append(delimiters, p.bump())
			if spec.IsEndOfList(p.peek().Kind) {
				// trailing delimiter immediately before the closer.
				return items, delimiters
			}
			continue
		}
		return items, delimiters
	}
}

// recover implements the "skip until a delimiter, an item-start, or an
// end-of-list token" half of the error-recovery contract. It reports
// ExpectedCode/ExpectedMsg once, consumes the offending token and every
// token after it that matches neither predicate, and returns a KindError
// node covering what was skipped (or NoNodeID if recovery immediately hit
// EOF with nothing consumed).
func (p *Parser) recover(spec ItemSpec) syntax.NodeID {
	sp := p.diagSpan()
	p.report(spec.ExpectedCode, sp, spec.ExpectedMsg)

	var skipped []syntax.NodeID
	for {
		k := p.peek().Kind
		if k == token.EOF || spec.IsPossibleItem(k) || spec.IsEndOfList(k) {
			break
		}
		skipped = append(skipped, p.bump())
	}
	if len(skipped) == 0 {
		return syntax.NoNodeID
	}
	span := syntax.CoverChildren(p.tree, skipped...)
	return p.tree.NewError(span, skipped...)
}
