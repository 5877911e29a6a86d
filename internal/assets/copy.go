package assets

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/staticbuild/internal/foundation/errors"
)

// Stats summarizes a CopyTree run.
type Stats struct {
	Files int
	Dirs  int
	Bytes int64
}

// Add accumulates other into s.
func (s *Stats) Add(other Stats) {
	s.Files += other.Files
	s.Dirs += other.Dirs
	s.Bytes += other.Bytes
}

// Exists reports whether dir is an existing directory. A missing path is not an error;
// a path that exists but is not a directory is.
func Exists(dir string) (bool, error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fsError(err, "stat source directory", dir)
	}
	if !info.IsDir() {
		return false, errors.NewError(errors.CategoryFileSystem, "source path is not a directory").
			Fatal().
			WithContext("path", dir).
			Build()
	}
	return true, nil
}

// ResetDir deletes dir and everything below it, then recreates it empty.
func ResetDir(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return fsError(err, "remove output directory", dir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fsError(err, "create output directory", dir)
	}
	return nil
}

// CopyTree recursively copies the contents of src into dst. Entries are visited in
// directory enumeration order; existing destination files are overwritten.
func CopyTree(src, dst string) (Stats, error) {
	var stats Stats

	entries, err := os.ReadDir(src)
	if err != nil {
		return stats, fsError(err, "read directory", src)
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		info, err := os.Stat(srcPath)
		if err != nil {
			return stats, fsError(err, "stat entry", srcPath)
		}

		if info.IsDir() {
			if err := os.MkdirAll(dstPath, 0o755); err != nil {
				return stats, fsError(err, "create directory", dstPath)
			}
			stats.Dirs++
			sub, err := CopyTree(srcPath, dstPath)
			stats.Add(sub)
			if err != nil {
				return stats, err
			}
			continue
		}

		n, err := CopyFile(srcPath, dstPath)
		if err != nil {
			return stats, err
		}
		stats.Files++
		stats.Bytes += n
	}

	return stats, nil
}

// CopyFile copies a single file from src to dst, preserving the permission bits.
func CopyFile(src, dst string) (int64, error) {
	srcFile, err := os.Open(filepath.Clean(src))
	if err != nil {
		return 0, fsError(err, "open source file", src)
	}
	defer func() {
		_ = srcFile.Close()
	}()

	info, err := srcFile.Stat()
	if err != nil {
		return 0, fsError(err, "stat source file", src)
	}

	dstFile, err := os.OpenFile(filepath.Clean(dst), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return 0, fsError(err, "create destination file", dst)
	}

	n, err := io.Copy(dstFile, srcFile)
	if err != nil {
		_ = dstFile.Close()
		return n, fsError(err, "copy file", dst)
	}
	if err := dstFile.Close(); err != nil {
		return n, fsError(err, "close destination file", dst)
	}

	// OpenFile only applies the mode on creation; overwritten files keep theirs otherwise.
	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return n, fsError(err, "set file mode", dst)
	}
	return n, nil
}

// Walk lists every regular file below root as slash-separated relative paths.
func Walk(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fsError(err, "walk directory", root)
	}
	return files, nil
}

func fsError(err error, msg, path string) error {
	return errors.WrapError(err, errors.CategoryFileSystem, msg).
		Fatal().
		WithContext("path", path).
		Build()
}
