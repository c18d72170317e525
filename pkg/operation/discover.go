package operation

import (
	"context"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

var (
	ErrRootNotFound = errors.Base("root directory does not exist")
	ErrRootNotDir   = errors.Base("root is not a directory")
)

// 🔍 CheckRoot fails unless root exists and is a directory
func CheckRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return errors.Errorf("%w: %s", ErrRootNotFound, root)
		}
		return errors.Errorf("checking root %s: %w", root, err)
	}
	if !info.IsDir() {
		return errors.Errorf("%w: %s", ErrRootNotDir, root)
	}
	return nil
}

// 🙈 Ignorer matches slash-separated paths relative to the root
type Ignorer []string

// Ignored reports whether rel matches any pattern
func (ig Ignorer) Ignored(rel string) bool {
	for _, pattern := range ig {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// IgnoredDir reports whether every file ending in ext below dir is ignored
// by the patterns, judged by a representative child
func (ig Ignorer) IgnoredDir(dir string, ext string) bool {
	if dir == "." || dir == "" {
		return false
	}
	return ig.Ignored(dir) || ig.Ignored(path.Join(dir, "index"+ext))
}

// 📂 Discover lists the regular files below root whose name ends with ext,
// minus the ignored ones, in walk order. Symlinks are not followed.
func Discover(ctx context.Context, root string, ext string, ignore []string) ([]string, error) {
	if err := CheckRoot(root); err != nil {
		return nil, err
	}

	ig := Ignorer(ignore)
	var files []string
	err := doublestar.GlobWalk(os.DirFS(root), "**/*"+ext, func(rel string, d fs.DirEntry) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !d.Type().IsRegular() || ig.Ignored(rel) {
			return nil
		}
		files = append(files, filepath.Join(root, filepath.FromSlash(rel)))
		return nil
	}, doublestar.WithFilesOnly(), doublestar.WithNoFollow())
	if err != nil {
		return nil, errors.Errorf("walking %s: %w", root, err)
	}

	return files, nil
}
