package source

import (
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Codec defines how a file's bytes are turned back into text.
type Codec interface {
	Wrap(r io.Reader) (io.ReadCloser, error)
	Extensions() []string
	Name() string
}

// PlainCodec passes bytes through unchanged.
type PlainCodec struct{}

func (c *PlainCodec) Wrap(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(r), nil
}

func (c *PlainCodec) Extensions() []string {
	return nil
}

func (c *PlainCodec) Name() string {
	return "plain"
}

// GzipCodec implements Codec for gzip. BGZF files are a series of gzip
// members and decode the same way since the reader is multistream.
type GzipCodec struct{}

func (c *GzipCodec) Wrap(r io.Reader) (io.ReadCloser, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, err
	}
	zr.Multistream(true)
	return zr, nil
}

func (c *GzipCodec) Extensions() []string {
	return []string{".gz", ".bgz", ".bgzf"}
}

func (c *GzipCodec) Name() string {
	return "gzip"
}

// ZstdCodec implements Codec for Zstandard.
type ZstdCodec struct{}

func (c *ZstdCodec) Wrap(r io.Reader) (io.ReadCloser, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	return zr.IOReadCloser(), nil
}

func (c *ZstdCodec) Extensions() []string {
	return []string{".zst", ".zstd"}
}

func (c *ZstdCodec) Name() string {
	return "zstd"
}

var codecs = []Codec{&GzipCodec{}, &ZstdCodec{}}

// DetectCodec picks a codec from the file name, defaulting to plain text.
func DetectCodec(path string) Codec {
	lower := strings.ToLower(path)
	for _, c := range codecs {
		for _, ext := range c.Extensions() {
			if strings.HasSuffix(lower, ext) {
				return c
			}
		}
	}
	return &PlainCodec{}
}
