package types

import (
	"fmt"
	"strconv"

	"svfront/internal/sourcemap"
)

// Label renders id the way a diagnostic message would spell it: the
// declared keyword for a predefined/floating type, "logic [7:0]" for a
// packed array, a typedef's own name for an alias, and so on.
func (in *Interner) Label(id TypeID, strings *sourcemap.Interner) string {
	t, ok := in.Lookup(id)
	if !ok {
		return "<unknown type>"
	}
	switch t.Kind {
	case KindError:
		return "<error type>"
	case KindVoid:
		return "void"
	case KindNull:
		return "null"
	case KindCHandle:
		return "chandle"
	case KindEvent:
		return "event"
	case KindString:
		return "string"
	case KindScalar:
		s := t.Scalar.String()
		if t.Signed {
			s += " signed"
		}
		return s
	case KindPackedArray:
		base := "logic"
		if et, ok := in.Lookup(t.Elem); ok && et.Kind == KindScalar {
			base = et.Scalar.String()
		}
		if t.Signed {
			base += " signed"
		}
		return fmt.Sprintf("%s [%d:%d]", base, t.Left, t.Right)
	case KindPredefinedInteger, KindFloating:
		return t.Predef.String()
	case KindAggregate:
		kind := "struct"
		if info, ok := in.Aggregate(id); ok && info.IsUnion {
			kind = "union"
		}
		if t.Name != sourcemap.NoStringID && strings != nil {
			if name, ok := strings.Lookup(t.Name); ok {
				return kind + " " + name
			}
		}
		return kind + " {...}"
	case KindEnum:
		if t.Name != sourcemap.NoStringID && strings != nil {
			if name, ok := strings.Lookup(t.Name); ok {
				return "enum " + name
			}
		}
		return "enum {...}"
	case KindAlias:
		if t.Name != sourcemap.NoStringID && strings != nil {
			if name, ok := strings.Lookup(t.Name); ok {
				return name
			}
		}
		return "typedef " + strconv.Itoa(int(id))
	default:
		return "?"
	}
}
