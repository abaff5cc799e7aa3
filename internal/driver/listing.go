package driver

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"manifmt/internal/layout"
)

// buildListing enumerates the conventional target sources under the
// package directory. Missing directories are simply empty; listing
// never fails, a package with no sources just infers nothing.
func buildListing(fsys afero.Fs, dir string) layout.Listing {
	var l layout.Listing
	l.HasSrcMain = fileExists(fsys, filepath.Join(dir, "src", "main.rs"))
	l.HasSrcLib = fileExists(fsys, filepath.Join(dir, "src", "lib.rs"))
	l.Bins = sourcesUnder(fsys, dir, "src/bin")
	l.Examples = sourcesUnder(fsys, dir, "examples")
	l.Tests = sourcesUnder(fsys, dir, "tests")
	l.Benches = sourcesUnder(fsys, dir, "benches")
	return l
}

func fileExists(fsys afero.Fs, path string) bool {
	info, err := fsys.Stat(path)
	return err == nil && !info.IsDir()
}

// sourcesUnder collects every .rs file below dir/sub, as slash paths
// relative to dir and prefixed with sub.
func sourcesUnder(fsys afero.Fs, dir, sub string) []string {
	root := filepath.Join(dir, filepath.FromSlash(sub))
	if ok, err := afero.DirExists(fsys, root); err != nil || !ok {
		return nil
	}
	var files []string
	_ = afero.Walk(fsys, root, func(path string, info fs.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		if !strings.HasSuffix(path, ".rs") {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		files = append(files, sub+"/"+filepath.ToSlash(rel))
		return nil
	})
	return files
}
