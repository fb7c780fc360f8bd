// Package decompress blindly probes schematic bytes for a gzip or zlib
// wrapper, falling back to the bytes unchanged. It never fails the
// pipeline: an already-decompressed input is just as valid as a wrapped one.
package decompress

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
)

// Decompress returns the gzip- or zlib-decoded form of data if either
// wrapper applies, otherwise it returns data unchanged.
func Decompress(data []byte) []byte {
	if out, ok := tryGzip(data); ok {
		return out
	}
	if out, ok := tryZlib(data); ok {
		return out
	}
	return data
}

func tryGzip(data []byte) ([]byte, bool) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, false
	}
	defer zr.Close()
	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, false
	}
	return out, true
}

func tryZlib(data []byte) ([]byte, bool) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, false
	}
	defer zr.Close()
	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, false
	}
	return out, true
}
