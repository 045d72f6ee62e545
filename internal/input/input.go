// Package input opens diff inputs for sequential reading, transparently decompressing gzip and zstd files.
package input

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Compression identifies how an input file is compressed.
type Compression uint8

// Supported compressions.
const (
	CompressionNone Compression = iota
	CompressionGzip
	CompressionZstd
)

func (c Compression) String() string {
	switch c {
	case CompressionGzip:
		return "gzip"
	case CompressionZstd:
		return "zstd"
	default:
		return "none"
	}
}

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// Options configures Open.
type Options struct {
	// Decompress enables detection and decoding of gzip and zstd content by magic bytes.
	Decompress bool
}

// File is an opened input. Reads return decompressed content.
type File struct {
	Path        string
	ModTime     time.Time
	Size        int64 // Size on disk, before decompression.
	Compression Compression

	r       io.Reader
	closers []func() error
}

// Open opens path for sequential reading.
func Open(path string, opts Options) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if fi.IsDir() {
		f.Close()
		return nil, fmt.Errorf("open %s: is a directory", path)
	}
	adviseSequential(f)

	br := bufio.NewReaderSize(f, 64*1024)
	file := &File{
		Path:    path,
		ModTime: fi.ModTime(),
		Size:    fi.Size(),
		r:       br,
		closers: []func() error{f.Close},
	}
	if !opts.Decompress {
		return file, nil
	}

	// Peek returns fewer bytes (and an error) for short files; those are never compressed.
	magic, _ := br.Peek(len(zstdMagic))
	switch {
	case bytes.HasPrefix(magic, gzipMagic):
		zr, err := gzip.NewReader(br)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("open %s: gzip: %w", path, err)
		}
		file.r = zr
		file.closers = append(file.closers, zr.Close)
		file.Compression = CompressionGzip
	case bytes.HasPrefix(magic, zstdMagic):
		zr, err := zstd.NewReader(br, zstd.WithDecoderConcurrency(1))
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("open %s: zstd: %w", path, err)
		}
		file.r = zr
		file.closers = append(file.closers, func() error {
			zr.Close()
			return nil
		})
		file.Compression = CompressionZstd
	}
	return file, nil
}

// Read reads decompressed content. Errors other than io.EOF are wrapped with the file's path.
func (f *File) Read(p []byte) (int, error) {
	n, err := f.r.Read(p)
	if err != nil && !errors.Is(err, io.EOF) {
		err = fmt.Errorf("read %s: %w", f.Path, err)
	}
	return n, err
}

// Close releases the decoder (if any) and the underlying file.
func (f *File) Close() error {
	var errs []error
	for i := len(f.closers) - 1; i >= 0; i-- {
		if err := f.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	f.closers = nil
	return errors.Join(errs...)
}
