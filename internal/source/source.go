// Package source opens image files as seekable byte sources.
package source

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// Source is a seekable view of a file's (decompressed) contents.
type Source struct {
	io.ReadSeeker
	size   int64
	closer io.Closer
}

// Size returns the number of bytes the source holds.
func (s *Source) Size() int64 {
	return s.size
}

func (s *Source) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// Open opens path for reading. Files ending in ".zst" are decompressed
// into memory first so that the result can still seek.
func Open(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	if strings.EqualFold(filepath.Ext(path), ".zst") {
		defer f.Close()
		data, err := decompress(f)
		if err != nil {
			return nil, fmt.Errorf("decompress %s: %w", path, err)
		}
		return FromBytes(data), nil
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	return &Source{ReadSeeker: f, size: fi.Size(), closer: f}, nil
}

// FromBytes returns a Source reading from data.
func FromBytes(data []byte) *Source {
	return &Source{ReadSeeker: bytes.NewReader(data), size: int64(len(data))}
}

func decompress(r io.Reader) ([]byte, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	return io.ReadAll(dec)
}
