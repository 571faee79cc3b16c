package export

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
)

var gzipMagic = []byte{0x1f, 0x8b}

// IsGzipPath reports whether path selects the gzip format.
func IsGzipPath(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".gz")
}

// Write encodes p to w, gzip-wrapped when compress is set.
func Write(w io.Writer, p Payload, compress bool) error {
	data, err := Marshal(p)
	if err != nil {
		return err
	}
	if !compress {
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("write export: %w", err)
		}
		return nil
	}
	zw := gzip.NewWriter(w)
	if _, err := zw.Write(data); err != nil {
		zw.Close()
		return fmt.Errorf("compress export: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("compress export: %w", err)
	}
	return nil
}

// Read decodes an export from r. Compressed input must start with the gzip
// magic bytes.
func Read(r io.Reader, compressed bool) (Payload, error) {
	if compressed {
		br := bufio.NewReader(r)
		head, err := br.Peek(len(gzipMagic))
		if err != nil || !bytes.Equal(head, gzipMagic) {
			return Payload{}, ErrNotGzip
		}
		zr, err := gzip.NewReader(br)
		if err != nil {
			return Payload{}, fmt.Errorf("%w: %v", ErrNotGzip, err)
		}
		defer zr.Close()
		r = zr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return Payload{}, fmt.Errorf("read export: %w", err)
	}
	return Unmarshal(data)
}

// ToFile writes p to path; a .gz extension selects gzip.
func ToFile(path string, p Payload) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	if err := Write(f, p, IsGzipPath(path)); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close export file: %w", err)
	}
	return nil
}

// FromFile reads an export written by ToFile.
func FromFile(path string) (Payload, error) {
	f, err := os.Open(path)
	if err != nil {
		return Payload{}, fmt.Errorf("open import file: %w", err)
	}
	defer f.Close()
	return Read(f, IsGzipPath(path))
}

// DefaultFileName is the suggested export name for a date stamp.
func DefaultFileName(stamp string, compress bool) string {
	name := "liftlog-export-" + stamp + ".json"
	if compress {
		name += ".gz"
	}
	return name
}
