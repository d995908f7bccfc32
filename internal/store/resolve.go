package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/samber/do"
	"github.com/samber/lo"
)

var ErrDirectoryNotFound = errors.New("output directory does not exist")

const (
	DefaultPublicDir = "public"
	generatedDir     = "generated"
)

// Resolver picks the directory generated files are written to.
type Resolver struct {
	// WorkDir defaults to the process working directory.
	WorkDir string
	// Public is the name of the static site directory, "public" when empty.
	Public string
}

func NewResolver(i *do.Injector) (*Resolver, error) {
	return &Resolver{Public: do.MustInvokeNamed[string](i, "public_dir")}, nil
}

func (r *Resolver) workDir() (string, error) {
	if r.WorkDir != "" {
		return filepath.Abs(r.WorkDir)
	}
	return os.Getwd()
}

// ResolveDir returns the override when it exists. Without one it uses
// public/generated under the working directory or its parent, creating
// generated as needed, and falls back to the working directory.
func (r *Resolver) ResolveDir(override string) (string, error) {
	wd, err := r.workDir()
	if err != nil {
		return "", err
	}

	if override != "" {
		dir := lo.Ternary(filepath.IsAbs(override), filepath.Clean(override), filepath.Join(wd, override))
		info, err := os.Stat(dir)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return "", fmt.Errorf("%w: %s", ErrDirectoryNotFound, override)
		case err != nil:
			return "", err
		case !info.IsDir():
			return "", fmt.Errorf("%w: %s is not a directory", ErrDirectoryNotFound, override)
		}
		return dir, nil
	}

	if public, ok := r.publicRoot(wd); ok {
		dir := filepath.Join(public, generatedDir)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", err
		}
		return dir, nil
	}
	return wd, nil
}

// PublicRoot returns the static site directory under the working directory
// or its parent. ok is false when neither has one.
func (r *Resolver) PublicRoot() (string, bool, error) {
	wd, err := r.workDir()
	if err != nil {
		return "", false, err
	}
	public, ok := r.publicRoot(wd)
	return public, ok, nil
}

func (r *Resolver) publicRoot(wd string) (string, bool) {
	public := lo.Ternary(r.Public != "", r.Public, DefaultPublicDir)
	for _, root := range []string{wd, filepath.Dir(wd)} {
		if dir := filepath.Join(root, public); isDir(dir) {
			return dir, true
		}
	}
	return "", false
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
