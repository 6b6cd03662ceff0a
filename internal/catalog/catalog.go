package catalog

import (
	"errors"
	"fmt"
	"math"
)

// MaxNameLen is the maximum number of bytes stored for any struct, field or
// type name. The serialized form reserves a 64-byte slot per name: up to
// MaxNameLen raw bytes followed by one NUL terminator.
const MaxNameLen = 63

// ErrCatalogFull is returned when appending another struct or field would
// push a count past what the wire format can represent (int32).
var ErrCatalogFull = errors.New("catalog: entry count exceeds int32")

// Flag is the bit set describing a field's shape.
type Flag int32

const (
	// FlagPointer marks a pointer field; on an array field it means the
	// array elements are pointers.
	FlagPointer Flag = 1 << 0
	// FlagArray is reserved in the serialized flag set. Classification
	// records multiplicity in FieldEntry.Array instead and never sets it.
	FlagArray Flag = 1 << 1
	// FlagFunction marks a pointer to a function.
	FlagFunction Flag = 1 << 2
)

// FieldEntry describes the layout of one struct field. Type holds the
// canonical element or pointee name, not the declared pointer/array syntax.
type FieldEntry struct {
	Name   string
	Type   string
	Offset int32
	Size   int32
	Align  int32
	Array  int32
	Flags  Flag
}

// StructEntry describes one record type and its fields in declaration order.
type StructEntry struct {
	Name   string
	Size   int32
	Fields []FieldEntry
}

// Catalog is an ordered, append-only collection of struct entries owned by a
// single run. Insertion order is the serialization order.
type Catalog struct {
	structs []StructEntry
}

// StructHandle identifies a struct entry by index, so it stays valid when the
// backing slice grows.
type StructHandle int

// FieldHandle identifies a field entry within a struct entry.
type FieldHandle struct {
	Struct StructHandle
	Field  int
}

// FieldInfo is the classified layout written into a field entry.
type FieldInfo struct {
	Type   string
	Offset int64
	Size   int64
	Align  int64
	Array  int32
	Flags  Flag
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{}
}

// Len returns the number of struct entries.
func (c *Catalog) Len() int {
	return len(c.structs)
}

// Structs exposes the entries for read-only traversal by the encoder.
func (c *Catalog) Structs() []StructEntry {
	return c.structs
}

// AddStruct appends a zero-initialized struct entry with the given name,
// truncated to MaxNameLen.
func (c *Catalog) AddStruct(name string) (StructHandle, error) {
	if len(c.structs) >= math.MaxInt32 {
		return 0, ErrCatalogFull
	}
	c.structs = append(c.structs, StructEntry{Name: TruncateName(name)})
	return StructHandle(len(c.structs) - 1), nil
}

// SetStructSize records the total byte size of the struct.
func (c *Catalog) SetStructSize(h StructHandle, size int64) {
	c.structs[h].Size = int32(size)
}

// AddField appends a zero-initialized field entry to the struct's field
// sequence and returns its handle.
func (c *Catalog) AddField(h StructHandle, name string) (FieldHandle, error) {
	st := &c.structs[h]
	if len(st.Fields) >= math.MaxInt32 {
		return FieldHandle{}, ErrCatalogFull
	}
	st.Fields = append(st.Fields, FieldEntry{Name: TruncateName(name)})
	return FieldHandle{Struct: h, Field: len(st.Fields) - 1}, nil
}

// SetFieldInfo writes the classified layout into the field entry. No
// validation is performed here; see Validate.
func (c *Catalog) SetFieldInfo(h FieldHandle, info FieldInfo) {
	f := &c.structs[h.Struct].Fields[h.Field]
	f.Type = TruncateName(info.Type)
	f.Offset = int32(info.Offset)
	f.Size = int32(info.Size)
	f.Align = int32(info.Align)
	f.Array = info.Array
	f.Flags = info.Flags
}

// Validate reports every field whose byte range escapes [0, structSize).
// Findings are advisory; the catalog is serialized either way.
func (c *Catalog) Validate() []string {
	var findings []string
	for _, st := range c.structs {
		for _, f := range st.Fields {
			if f.Offset < 0 || f.Offset+f.Size > st.Size {
				findings = append(findings, fmt.Sprintf(
					"struct %q field %q: bytes [%d, %d) escape struct size %d",
					st.Name, f.Name, f.Offset, f.Offset+f.Size, st.Size,
				))
			}
		}
	}
	return findings
}

// TruncateName bounds a name to MaxNameLen bytes. Longer names are cut
// silently; the serialized form carries no length, only the terminator.
func TruncateName(s string) string {
	if len(s) <= MaxNameLen {
		return s
	}
	return s[:MaxNameLen]
}
