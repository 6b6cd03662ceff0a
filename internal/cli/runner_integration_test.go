package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rosedna/gen-dna/internal/catalog"
	"github.com/rosedna/gen-dna/internal/encode"
	"github.com/rosedna/gen-dna/internal/inspect"
)

func TestRunner_Run_EndToEnd(t *testing.T) {
	output := filepath.Join(t.TempDir(), "rose.dna")

	r := NewRunner(inspect.New(), encode.NewFileWriter())
	cfg := &Config{
		Packages: []string{"github.com/rosedna/gen-dna/testdata/layoutbasic"},
		Output:   output,
	}

	if err := r.Run(cfg); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !bytes.HasPrefix(data, []byte(encode.Magic)) {
		t.Fatalf("output does not start with magic, got % x", data[:4])
	}

	cat, err := encode.Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	vec := structByName(cat, "Vec3")
	if vec == nil {
		t.Fatal("Vec3 not found in decoded catalog")
	}
	if vec.Size != 12 || len(vec.Fields) != 3 {
		t.Fatalf("unexpected Vec3 entry: %#v", vec)
	}
	for i, want := range []string{"X", "Y", "Z"} {
		f := vec.Fields[i]
		if f.Name != want || f.Type != "float32" || f.Offset != int32(i)*4 ||
			f.Size != 4 || f.Align != 4 || f.Array != 1 || f.Flags != 0 {
			t.Fatalf("unexpected Vec3 field %d: %#v", i, f)
		}
	}

	node := structByName(cat, "Node")
	if node == nil {
		t.Fatal("Node not found in decoded catalog")
	}
	next := node.Fields[0]
	if next.Name != "Next" || next.Type != "Node" || next.Array != 1 ||
		next.Flags&catalog.FlagPointer == 0 {
		t.Fatalf("unexpected Node.Next entry: %#v", next)
	}

	table := structByName(cat, "Table")
	if table == nil {
		t.Fatal("Table not found in decoded catalog")
	}
	rows := table.Fields[0]
	if rows.Type != "int32" || rows.Array != 8 || rows.Size != 32 || rows.Flags != 0 {
		t.Fatalf("unexpected Table.Rows entry: %#v", rows)
	}

	cb := structByName(cat, "Callbacks")
	if cb == nil {
		t.Fatal("Callbacks not found in decoded catalog")
	}
	onChange := cb.Fields[0]
	if onChange.Flags&catalog.FlagFunction == 0 || onChange.Flags&catalog.FlagPointer == 0 {
		t.Fatalf("Callbacks.OnChange should carry pointer and function flags, got %#v", onChange)
	}
}

func structByName(c *catalog.Catalog, name string) *catalog.StructEntry {
	structs := c.Structs()
	for i := range structs {
		if structs[i].Name == name {
			return &structs[i]
		}
	}
	return nil
}
