package source

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/afero"
)

// Opener hands out the decompressed content of one resolved file.
// The caller is responsible for closing the returned reader.
type Opener interface {
	Open(ctx context.Context, path string) (io.ReadCloser, error)
}

// FileOpener opens files through an afero filesystem and decompresses them
// according to DetectCodec.
type FileOpener struct {
	Fs afero.Fs
}

// NewFileOpener returns an Opener over fs, or the OS filesystem when fs is nil.
func NewFileOpener(fs afero.Fs) *FileOpener {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &FileOpener{Fs: fs}
}

func (o *FileOpener) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := o.Fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("source: open %s: %w", path, err)
	}

	codec := DetectCodec(path)
	r, err := codec.Wrap(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("source: %s decode %s: %w", codec.Name(), path, err)
	}

	return &decodedFile{ReadCloser: r, file: f}, nil
}

// decodedFile closes the decoder first, then the underlying file.
type decodedFile struct {
	io.ReadCloser
	file io.Closer
}

func (d *decodedFile) Close() error {
	err := d.ReadCloser.Close()
	if ferr := d.file.Close(); err == nil {
		err = ferr
	}
	return err
}
