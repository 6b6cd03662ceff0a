package encode

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/rosedna/gen-dna/internal/catalog"
)

var (
	// ErrBadMagic means the input does not start with the DNA magic word.
	ErrBadMagic = errors.New("dna: missing SDNA magic")
	// ErrByteOrderMismatch means the magic word is present but byte-swapped:
	// the file was produced on a machine with the other byte order.
	ErrByteOrderMismatch = errors.New("dna: byte order mismatch")
	// ErrTruncated means the input ended inside an entry.
	ErrTruncated = errors.New("dna: truncated input")
)

// Decode reads a DNA byte sequence produced by Encode on a machine with the
// same byte order. It rebuilds a catalog for verification and inspection.
func Decode(data []byte) (*catalog.Catalog, error) {
	r := &reader{data: data}

	magic, err := r.take(len(Magic))
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(magic, []byte(Magic)) {
		if string(magic) == reversed(Magic) {
			return nil, ErrByteOrderMismatch
		}
		return nil, ErrBadMagic
	}

	structCount, err := r.int32()
	if err != nil {
		return nil, err
	}
	if structCount < 0 {
		return nil, fmt.Errorf("dna: invalid struct count %d", structCount)
	}

	c := catalog.New()
	for i := int32(0); i < structCount; i++ {
		if err := decodeStruct(r, c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func decodeStruct(r *reader, c *catalog.Catalog) error {
	name, err := r.cstring()
	if err != nil {
		return err
	}
	h, err := c.AddStruct(name)
	if err != nil {
		return err
	}

	size, err := r.int32()
	if err != nil {
		return err
	}
	c.SetStructSize(h, int64(size))

	fieldCount, err := r.int32()
	if err != nil {
		return err
	}
	if fieldCount < 0 {
		return fmt.Errorf("dna: invalid field count %d in struct %q", fieldCount, name)
	}

	for i := int32(0); i < fieldCount; i++ {
		if err := decodeField(r, c, h); err != nil {
			return err
		}
	}
	return nil
}

func decodeField(r *reader, c *catalog.Catalog, h catalog.StructHandle) error {
	name, err := r.cstring()
	if err != nil {
		return err
	}
	fh, err := c.AddField(h, name)
	if err != nil {
		return err
	}

	typ, err := r.cstring()
	if err != nil {
		return err
	}

	var ints [5]int32
	for i := range ints {
		if ints[i], err = r.int32(); err != nil {
			return err
		}
	}

	c.SetFieldInfo(fh, catalog.FieldInfo{
		Type:   typ,
		Offset: int64(ints[0]),
		Size:   int64(ints[1]),
		Align:  int64(ints[2]),
		Array:  ints[3],
		Flags:  catalog.Flag(ints[4]),
	})
	return nil
}

type reader struct {
	data []byte
	off  int
}

func (r *reader) take(n int) ([]byte, error) {
	if r.off+n > len(r.data) {
		return nil, ErrTruncated
	}
	b := r.data[r.off : r.off+n]
	r.off += n
	return b, nil
}

func (r *reader) int32() (int32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return int32(binary.NativeEndian.Uint32(b)), nil
}

func (r *reader) cstring() (string, error) {
	end := bytes.IndexByte(r.data[r.off:], 0)
	if end < 0 {
		return "", ErrTruncated
	}
	s := string(r.data[r.off : r.off+end])
	r.off += end + 1
	return s, nil
}

func reversed(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}
