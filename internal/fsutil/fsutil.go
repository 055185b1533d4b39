package fsutil

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// MakeDir creates name and any missing parents. An existing directory is
// not an error.
func MakeDir(name string) error {
	return os.MkdirAll(name, 0o755)
}

// Clean removes dir and everything below it. A missing dir is not an error.
// dir must lie strictly inside root; root itself and anything outside it
// are refused.
func Clean(root, dir string) error {
	root, err := filepath.Abs(root)
	if err != nil {
		return err
	}
	target, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	rel, err := filepath.Rel(root, target)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("refusing to clean %q outside of %q", dir, root)
	}
	return os.RemoveAll(target)
}

// WriteFileMode writes data to name, creating parent directories, and sets
// the permission bits explicitly so the process umask does not apply.
func WriteFileMode(name string, data []byte, perm fs.FileMode) error {
	if err := MakeDir(filepath.Dir(name)); err != nil {
		return err
	}
	if err := os.WriteFile(name, data, perm); err != nil {
		return err
	}
	return os.Chmod(name, perm)
}

// CopyFile copies the regular file src to dst, keeping its permission bits.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	if err := MakeDir(filepath.Dir(dst)); err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		return errors.Join(err, out.Close())
	}
	return out.Close()
}

// Copy copies the file or directory src into dst. Directories are copied
// recursively.
func Copy(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return CopyFile(src, dst)
	}
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return MakeDir(target)
		}
		return CopyFile(path, target)
	})
}
