package u

import (
	"bytes"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
)

// Compression identifies how a file is compressed. It's derived from
// file extension.
type Compression int

const (
	CompressionNone Compression = iota
	CompressionGzip
	CompressionZstd
	CompressionBrotli
)

func (c Compression) String() string {
	switch c {
	case CompressionGzip:
		return "gzip"
	case CompressionZstd:
		return "zstd"
	case CompressionBrotli:
		return "brotli"
	}
	return "none"
}

// CompressionForPath returns compression based on file extension:
// .gz, .zst / .zstd, .br
// TODO: could sniff file content instead of checking file extension
func CompressionForPath(path string) Compression {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".gz":
		return CompressionGzip
	case ".zst", ".zstd":
		return CompressionZstd
	case ".br":
		return CompressionBrotli
	}
	return CompressionNone
}

func getErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// CompressData compresses d with compression c
func CompressData(d []byte, c Compression) ([]byte, error) {
	var dst bytes.Buffer
	switch c {
	case CompressionNone:
		return d, nil
	case CompressionGzip:
		w, err := gzip.NewWriterLevel(&dst, gzip.BestCompression)
		if err != nil {
			return nil, err
		}
		_, err = w.Write(d)
		err2 := w.Close()
		if err = getErr(err, err2); err != nil {
			return nil, err
		}
	case CompressionZstd:
		// in my tests zstd.SpeedBestCompression is much slower and not much better
		w, err := zstd.NewWriter(&dst, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, err
		}
		_, err = w.Write(d)
		err2 := w.Close()
		if err = getErr(err, err2); err != nil {
			return nil, err
		}
	case CompressionBrotli:
		w := brotli.NewWriterLevel(&dst, brotli.DefaultCompression)
		_, err := w.Write(d)
		err2 := w.Close()
		if err = getErr(err, err2); err != nil {
			return nil, err
		}
	}
	return dst.Bytes(), nil
}

// DecompressData decompresses d compressed with c
func DecompressData(d []byte, c Compression) ([]byte, error) {
	r := bytes.NewReader(d)
	switch c {
	case CompressionGzip:
		gr, err := gzip.NewReader(r)
		if err != nil {
			return nil, err
		}
		defer gr.Close()
		return io.ReadAll(gr)
	case CompressionZstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		return io.ReadAll(zr)
	case CompressionBrotli:
		return io.ReadAll(brotli.NewReader(r))
	}
	return d, nil
}

// ReadFileMaybeCompressed reads a file, decompressing it
// if extension says it's compressed
func ReadFileMaybeCompressed(path string) ([]byte, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecompressData(d, CompressionForPath(path))
}

// WriteFileMaybeCompressed writes data to a path, compressing
// it if extension says so. It truncates existing file.
func WriteFileMaybeCompressed(path string, d []byte) error {
	d2, err := CompressData(d, CompressionForPath(path))
	if err != nil {
		return err
	}
	return os.WriteFile(path, d2, 0644)
}
