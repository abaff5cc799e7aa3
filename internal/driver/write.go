package driver

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// atomicWrite replaces path with data via a temporary file in the same
// directory and a rename, so an interrupted run leaves the original
// either fully intact or fully replaced, never truncated.
func atomicWrite(fsys afero.Fs, path string, data []byte) error {
	mode := os.FileMode(0o644)
	if info, err := fsys.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	dir := filepath.Dir(path)
	tmp, err := afero.TempFile(fsys, dir, "."+filepath.Base(path)+".tmp-")
	if err != nil {
		return &FilesystemError{Path: path, Op: "create temp file", Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		fsys.Remove(tmpName)
		return &FilesystemError{Path: path, Op: "write", Err: err}
	}
	if err := tmp.Close(); err != nil {
		fsys.Remove(tmpName)
		return &FilesystemError{Path: path, Op: "close", Err: err}
	}
	if err := fsys.Chmod(tmpName, mode); err != nil {
		fsys.Remove(tmpName)
		return &FilesystemError{Path: path, Op: "chmod", Err: err}
	}
	if err := fsys.Rename(tmpName, path); err != nil {
		fsys.Remove(tmpName)
		return &FilesystemError{Path: path, Op: "rename", Err: err}
	}
	return nil
}
