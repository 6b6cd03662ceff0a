package layoutshapes

import "time"

type Inner struct {
	A int64
	B int64
}

type Shapes struct {
	Ptrs   [3]*Inner
	Hooks  [2]func()
	Name   string
	Data   []byte
	Lookup map[string]int32
	Empty  [4]struct{}
	Grid   [2][3]float64
	hidden Inner
	When   time.Time
}

// Buf is a named non-struct type and should not be cataloged.
type Buf [16]byte

// Renamed is an alias and should be cataloged under the alias name.
type Renamed = Inner

// Box is generic and has no concrete layout.
type Box[T any] struct {
	V T
}
