// Package codec centralizes stream decompression for snapshot inputs.
//
// Snapshot files are often exported compressed. A Decompressor wraps the raw
// blob reader with the matching decompression stream; ForPath selects one by
// file extension so callers normally never pick a codec explicitly.
package codec

import (
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Decompressor wraps a raw blob reader with stream decompression.
// Implementations must be safe for concurrent use; the readers they return
// are not.
type Decompressor interface {
	// WrapReader returns a reader yielding the decompressed stream.
	// Closing it does not close the underlying reader.
	WrapReader(r io.Reader) (io.ReadCloser, error)
	Name() string
}

// ByName returns a built-in decompressor by its stable name.
func ByName(name string) (Decompressor, bool) {
	switch name {
	case "none":
		return None{}, true
	case "gzip":
		return Gzip{}, true
	case "zstd":
		return Zstd{}, true
	case "lz4":
		return LZ4{}, true
	default:
		return nil, false
	}
}

// ForPath selects a decompressor from a file extension:
// .gz → gzip, .zst/.zstd → zstd, .lz4 → lz4, anything else → none.
func ForPath(path string) Decompressor {
	switch {
	case strings.HasSuffix(path, ".gz"):
		return Gzip{}
	case strings.HasSuffix(path, ".zst"), strings.HasSuffix(path, ".zstd"):
		return Zstd{}
	case strings.HasSuffix(path, ".lz4"):
		return LZ4{}
	default:
		return None{}
	}
}

// None passes the stream through unchanged.
type None struct{}

// WrapReader implements Decompressor.
func (None) WrapReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(r), nil
}

// Name returns the unique name of the codec ("none").
func (None) Name() string { return "none" }

// Gzip decompresses gzip streams.
type Gzip struct{}

// WrapReader implements Decompressor.
func (Gzip) WrapReader(r io.Reader) (io.ReadCloser, error) {
	return gzip.NewReader(r)
}

// Name returns the unique name of the codec ("gzip").
func (Gzip) Name() string { return "gzip" }

// Zstd decompresses zstandard streams.
type Zstd struct{}

// WrapReader implements Decompressor.
func (Zstd) WrapReader(r io.Reader) (io.ReadCloser, error) {
	d, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	return d.IOReadCloser(), nil
}

// Name returns the unique name of the codec ("zstd").
func (Zstd) Name() string { return "zstd" }

// LZ4 decompresses lz4 frame streams.
type LZ4 struct{}

// WrapReader implements Decompressor.
func (LZ4) WrapReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(lz4.NewReader(r)), nil
}

// Name returns the unique name of the codec ("lz4").
func (LZ4) Name() string { return "lz4" }
