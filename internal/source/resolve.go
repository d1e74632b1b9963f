package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
)

// Resolver expands a path pattern into an ordered list of files.
// Zero matches is an empty list, not an error.
type Resolver interface {
	Resolve(ctx context.Context, pattern string) ([]string, error)
}

// GlobResolver resolves doublestar patterns ("data/**/*.vcf.gz") against an
// afero filesystem.
type GlobResolver struct {
	Fs afero.Fs
}

// NewGlobResolver returns a resolver over fs, or the OS filesystem when fs is nil.
func NewGlobResolver(fs afero.Fs) *GlobResolver {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &GlobResolver{Fs: fs}
}

// Resolve returns the matching regular files as absolute paths, sorted.
func (g *GlobResolver) Resolve(ctx context.Context, pattern string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if pattern == "" {
		return nil, errors.New("source: empty pattern")
	}
	if !doublestar.ValidatePathPattern(pattern) {
		return nil, fmt.Errorf("source: invalid pattern %q: %w", pattern, doublestar.ErrBadPattern)
	}

	glob, root, err := rootedPattern(pattern)
	if err != nil {
		return nil, fmt.Errorf("source: resolve %q: %w", pattern, err)
	}

	fsys := afero.NewIOFS(afero.NewBasePathFs(g.Fs, root))
	matches, err := doublestar.Glob(fsys, glob, doublestar.WithFilesOnly(), doublestar.WithFailOnIOErrors())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("source: glob %q: %w", pattern, err)
	}

	files := make([]string, 0, len(matches))
	for _, m := range matches {
		files = append(files, filepath.Join(root, filepath.FromSlash(m)))
	}
	slices.Sort(files)
	return files, nil
}

// rootedPattern turns pattern into a glob relative to the volume root, since
// io/fs paths are unrooted. Only the literal directory prefix is made absolute
// and cleaned; it is then escaped so that metacharacters in the working
// directory (a "run[1]" directory, say) match literally.
func rootedPattern(pattern string) (glob, root string, err error) {
	base, rest := doublestar.SplitPattern(filepath.ToSlash(pattern))
	abs, err := filepath.Abs(filepath.FromSlash(base))
	if err != nil {
		return "", "", err
	}

	vol := filepath.VolumeName(abs)
	root = vol + string(filepath.Separator)
	dir := filepath.ToSlash(strings.TrimPrefix(abs[len(vol):], string(filepath.Separator)))
	if dir == "" {
		return rest, root, nil
	}
	return escapeMeta(dir) + "/" + rest, root, nil
}

// escapeMeta backslash-escapes the characters doublestar treats as syntax.
func escapeMeta(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '{', '}', '\\':
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
