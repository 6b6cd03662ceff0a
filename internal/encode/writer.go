package encode

import (
	"errors"
	"fmt"
	"io"
	"os"
)

var (
	// ErrOpen means the destination file could not be opened for writing.
	ErrOpen = errors.New("dna: open output file")
	// ErrShortWrite means fewer bytes reached the file than were encoded.
	ErrShortWrite = errors.New("dna: short write to output file")
)

// FileWriter writes an encoded catalog to disk.
type FileWriter interface {
	Write(filename string, data []byte) error
}

type fileWriter struct{}

// NewFileWriter creates a plain file writer. It overwrites any existing
// content and keeps open failures and short writes distinguishable via
// errors.Is.
func NewFileWriter() FileWriter {
	return &fileWriter{}
}

func (w *fileWriter) Write(filename string, data []byte) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrOpen, err)
	}

	n, werr := f.Write(data)
	if werr == nil && n < len(data) {
		werr = io.ErrShortWrite
	}
	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		return fmt.Errorf("%w %q: %v", ErrShortWrite, filename, werr)
	}
	return nil
}
