// Package inspect is the type-introspection provider: it loads Go packages
// and reports the physical layout of every named struct type as raw per-field
// facts. The core never re-derives sizes, offsets or alignments itself; it
// trusts the numbers produced here by the compiler's own sizes tables.
package inspect

import (
	"fmt"

	"go/types"

	"golang.org/x/tools/go/packages"

	"github.com/rosedna/gen-dna/internal/classify"
)

// Record describes one struct type as reported by the provider.
type Record struct {
	Name   string
	Size   int64
	Fields []Field
}

// Field carries the layout facts for one field in declaration order.
type Field struct {
	Name   string
	Offset int64
	Align  int64
	Facts  classify.Facts
}

// Provider resolves a package pattern to struct layout records.
type Provider interface {
	Describe(pkgPattern string) ([]Record, error)
}

type providerImpl struct{}

// New returns the go/packages-backed provider.
func New() Provider {
	return &providerImpl{}
}

func (p *providerImpl) Describe(pkgPattern string) ([]Record, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName |
			packages.NeedTypes |
			packages.NeedTypesSizes |
			packages.NeedModule,
	}

	pkgs, err := packages.Load(cfg, pkgPattern)
	if err != nil {
		return nil, fmt.Errorf("load package %q: %w", pkgPattern, err)
	}
	if packages.PrintErrors(pkgs) > 0 {
		return nil, fmt.Errorf("package %q has compilation errors", pkgPattern)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("package %q not found", pkgPattern)
	}

	var records []Record
	for _, pkg := range pkgs {
		recs, err := describePackage(pkg)
		if err != nil {
			return nil, fmt.Errorf("package %q: %w", pkgPattern, err)
		}
		records = append(records, recs...)
	}
	return records, nil
}

func describePackage(pkg *packages.Package) ([]Record, error) {
	if pkg.Types == nil || pkg.Types.Scope() == nil {
		return nil, fmt.Errorf("type info unavailable")
	}
	if pkg.TypesSizes == nil {
		return nil, fmt.Errorf("sizes unavailable")
	}

	qualifier := func(p *types.Package) string {
		if p == nil || p.Path() == pkg.Types.Path() {
			return ""
		}
		return p.Name()
	}

	scope := pkg.Types.Scope()
	var records []Record
	// Scope().Names() is sorted, so catalog order is deterministic.
	for _, name := range scope.Names() {
		obj, ok := scope.Lookup(name).(*types.TypeName)
		if !ok {
			continue
		}
		st, ok := extractStructType(obj.Type())
		if !ok {
			continue
		}
		if isGeneric(obj.Type()) {
			// Uninstantiated generic types have no concrete layout.
			continue
		}
		records = append(records, describeStruct(name, obj.Type(), st, pkg.TypesSizes, qualifier))
	}
	return records, nil
}

func describeStruct(
	name string,
	t types.Type,
	st *types.Struct,
	sizes types.Sizes,
	qualifier types.Qualifier,
) Record {
	rec := Record{
		Name: name,
		Size: sizes.Sizeof(t),
	}

	vars := make([]*types.Var, st.NumFields())
	for i := range vars {
		vars[i] = st.Field(i)
	}
	offsets := sizes.Offsetsof(vars)

	rec.Fields = make([]Field, 0, len(vars))
	for i, v := range vars {
		rec.Fields = append(rec.Fields, Field{
			Name:   v.Name(),
			Offset: offsets[i],
			Align:  sizes.Alignof(v.Type()),
			Facts:  fieldFacts(v.Type(), sizes, qualifier),
		})
	}
	return rec
}

// fieldFacts computes the raw classification facts for one field type.
// Shape is judged on the underlying type so named pointer/array types behave
// like their definitions, while all names are rendered from the declared
// types.
func fieldFacts(t types.Type, sizes types.Sizes, qualifier types.Qualifier) classify.Facts {
	facts := classify.Facts{
		OwnType: types.TypeString(t, qualifier),
		Size:    sizes.Sizeof(t),
	}

	switch u := t.Underlying().(type) {
	case *types.Pointer:
		facts.IsPointer = true
		facts.Pointee = types.TypeString(u.Elem(), qualifier)

	case *types.Signature:
		// Func values are pointer-sized; the pointee is the signature.
		facts.IsFuncPointer = true
		facts.Pointee = types.TypeString(u, qualifier)

	case *types.Array:
		facts.IsArray = true
		elem := innermostElem(u)
		facts.Elem = types.TypeString(elem, qualifier)
		facts.ElemSize = sizes.Sizeof(elem)
		switch eu := elem.Underlying().(type) {
		case *types.Pointer:
			facts.ElemIsPointer = true
			facts.ElemPointee = types.TypeString(eu.Elem(), qualifier)
		case *types.Signature:
			facts.ElemIsPointer = true
			facts.ElemPointee = types.TypeString(eu, qualifier)
		}
	}

	return facts
}

// innermostElem unwraps nested array dimensions to the first non-array
// element type, so T[2][3] reports T with a collapsed multiplicity.
func innermostElem(at *types.Array) types.Type {
	elem := at.Elem()
	for {
		inner, ok := elem.Underlying().(*types.Array)
		if !ok {
			return elem
		}
		elem = inner.Elem()
	}
}

func extractStructType(t types.Type) (*types.Struct, bool) {
	switch v := t.(type) {
	case *types.Alias:
		return extractStructType(v.Rhs())
	case *types.Named:
		return extractStructType(v.Underlying())
	case *types.Struct:
		return v, true
	default:
		return nil, false
	}
}

func isGeneric(t types.Type) bool {
	named, ok := t.(*types.Named)
	return ok && named.TypeParams().Len() > 0
}
