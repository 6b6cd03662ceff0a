// Package classify turns raw per-field facts from the introspection provider
// into the normalized type name, array multiplicity and flag bits recorded in
// the catalog.
package classify

import "github.com/rosedna/gen-dna/internal/catalog"

// Facts are the raw layout facts for one field, as reported by the provider.
// For array fields the Elem* values describe the innermost element after all
// nested dimensions are unwrapped.
type Facts struct {
	// OwnType is the field's declared type, rendered verbatim.
	OwnType string
	// Pointee names the referenced type when the field itself is a pointer
	// or function pointer.
	Pointee string
	// Elem names the innermost element type of an array field.
	Elem string
	// ElemPointee names the pointee when the innermost element is a pointer.
	ElemPointee string

	IsPointer     bool
	IsFuncPointer bool
	IsArray       bool
	ElemIsPointer bool

	// Size is the field's total byte footprint, all array elements included.
	Size int64
	// ElemSize is the byte size of one innermost array element.
	ElemSize int64
}

// Result is the normalized classification written into a field entry.
type Result struct {
	Type  string
	Array int32
	Flags catalog.Flag
}

// Classify derives the canonical type name, multiplicity and flags for one
// field. It is total: inconsistent facts degrade to a unit multiplicity
// rather than failing.
//
// A field that is itself a pointer is never treated as an array, even when
// its pointee is an array type. An array field stores the multiplicity of
// its innermost elements, collapsing nested dimensions into one number, and
// names the element (or the element's pointee) rather than the array syntax.
func Classify(f Facts) Result {
	res := Result{Array: 1}

	switch {
	case f.IsPointer || f.IsFuncPointer:
		res.Flags |= catalog.FlagPointer
		if f.IsFuncPointer {
			res.Flags |= catalog.FlagFunction
		}
		res.Type = f.Pointee

	case f.IsArray:
		// Zero-size elements carry no derivable count; keep Array at 1 so
		// Array * ElemSize still matches the (zero) field size.
		if f.ElemSize > 0 {
			res.Array = int32(f.Size / f.ElemSize)
		}
		if f.ElemIsPointer {
			res.Flags |= catalog.FlagPointer
			res.Type = f.ElemPointee
		} else {
			res.Type = f.Elem
		}

	default:
		res.Type = f.OwnType
	}

	return res
}
