package layoutbasic

type Vec3 struct {
	X float32
	Y float32
	Z float32
}

type Node struct {
	Next  *Node
	Value int32
}

type Table struct {
	Rows [4][2]int32
}

type Callbacks struct {
	OnChange func(old, next int32) bool
}
