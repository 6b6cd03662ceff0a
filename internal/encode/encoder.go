// Package encode serializes a finished catalog into the fixed-layout DNA
// byte sequence and writes it to disk. Integers are 4 bytes in the producing
// machine's native byte order; the magic word doubles as an endianness
// sentinel for readers on the other byte order.
package encode

import (
	"bytes"
	"encoding/binary"

	"github.com/rosedna/gen-dna/internal/catalog"
)

// Magic identifies DNA files. Read as a 32-bit word it exposes a byte-order
// mismatch between producer and consumer.
const Magic = "SDNA"

// Encode walks the catalog in insertion order and produces the exact output
// byte sequence: magic, int32 struct count, then per struct its
// NUL-terminated name, int32 size, int32 field count, and per field the
// NUL-terminated name and type followed by int32 offset, size, align, array
// and flags.
func Encode(c *catalog.Catalog) []byte {
	var buf bytes.Buffer

	buf.WriteString(Magic)
	writeInt32(&buf, int32(c.Len()))

	for _, st := range c.Structs() {
		writeString(&buf, st.Name)
		writeInt32(&buf, st.Size)

		writeInt32(&buf, int32(len(st.Fields)))
		for _, f := range st.Fields {
			writeString(&buf, f.Name)
			writeString(&buf, f.Type)
			writeInt32(&buf, f.Offset)
			writeInt32(&buf, f.Size)
			writeInt32(&buf, f.Align)
			writeInt32(&buf, f.Array)
			writeInt32(&buf, int32(f.Flags))
		}
	}

	return buf.Bytes()
}

func writeInt32(buf *bytes.Buffer, v int32) {
	var b [4]byte
	binary.NativeEndian.PutUint32(b[:], uint32(v))
	buf.Write(b[:])
}

// writeString appends the raw bytes plus a single NUL terminator. Names are
// bounded by the catalog, so no length prefix is carried.
func writeString(buf *bytes.Buffer, s string) {
	buf.WriteString(s)
	buf.WriteByte(0)
}
