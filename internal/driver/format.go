// Package driver orchestrates the per-file pipeline: read, parse,
// build, normalize, render, and atomically rewrite. Files are
// independent; the driver fans them out across workers and collects
// per-file results without letting one failure stop the others.
package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"manifmt/internal/diag"
	"manifmt/internal/layout"
	"manifmt/internal/manifest"
	"manifmt/internal/normalize"
	"manifmt/internal/project"
	"manifmt/internal/render"
	"manifmt/internal/tomlscan"
)

// FormatOptions configures manifest formatting. None of the options
// alter the emitted style; the style guide is fixed.
type FormatOptions struct {
	// Check reports whether files would change without writing them.
	Check bool
	// MaxDiagnostics bounds the diagnostics collected per file.
	MaxDiagnostics int
}

// FormatResult captures the result of formatting a single manifest.
type FormatResult struct {
	Path    string
	Changed bool
	Err     error
	// Bag holds the file's diagnostics (warnings, and the error in
	// renderable form).
	Bag *diag.Bag
}

// FilesystemError reports a read, write, or rename failure for one file.
type FilesystemError struct {
	Path string
	Op   string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Path, e.Op, e.Err)
}

func (e *FilesystemError) Unwrap() error { return e.Err }

// FormatPaths formats the given manifest files, or every workspace
// member discovered from the current directory when paths is empty.
// Per-file failures land in the results; only workspace discovery and
// cancellation surface as the returned error.
func FormatPaths(ctx context.Context, fsys afero.Fs, paths []string, opts FormatOptions) ([]FormatResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	files, err := collectManifests(fsys, paths)
	if err != nil {
		return nil, err
	}

	return formatAll(ctx, fsys, files, opts), nil
}

// collectManifests resolves explicit arguments (files or package
// directories) or falls back to workspace discovery.
func collectManifests(fsys afero.Fs, paths []string) ([]string, error) {
	if len(paths) == 0 {
		root, ok, err := project.FindManifest(fsys, ".")
		if err != nil {
			return nil, &project.DiscoveryError{Msg: "failed to locate workspace root", Err: err}
		}
		if !ok {
			return nil, &project.DiscoveryError{Msg: "no " + project.ManifestName + " found in this directory or any parent"}
		}
		return project.Members(fsys, root)
	}

	// Explicit arguments fail per file, not per run: an unreadable path
	// surfaces when its pipeline tries to read it, and the remaining
	// files are still attempted.
	files := make([]string, 0, len(paths))
	for _, p := range paths {
		if info, err := fsys.Stat(p); err == nil && info.IsDir() {
			files = append(files, filepath.Join(p, project.ManifestName))
			continue
		}
		files = append(files, p)
	}
	return files, nil
}

// formatSingleFile runs the whole pipeline for one manifest.
func formatSingleFile(fsys afero.Fs, path string, opts FormatOptions) FormatResult {
	res := FormatResult{Path: path, Bag: diag.NewBag(opts.MaxDiagnostics)}

	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		res.Err = &FilesystemError{Path: path, Op: "read", Err: err}
		res.Bag.Add(diag.Diagnostic{
			Severity: diag.SevError,
			Code:     diag.CodeFilesystem,
			Message:  fmt.Sprintf("read: %v", err),
			Path:     path,
		})
		return res
	}

	doc, err := tomlscan.Parse(data)
	if err != nil {
		res.Err = fmt.Errorf("%s: failed to parse TOML: %w", path, err)
		res.Bag.Add(parseDiagnostic(path, data, err))
		return res
	}

	m := manifest.Build(path, doc, res.Bag)
	listing := buildListing(fsys, filepath.Dir(path))
	m = normalize.Normalize(m, &normalize.Context{
		Path:     path,
		Inferred: layout.Infer(m.PackageName(), listing),
		Bag:      res.Bag,
	})
	formatted := render.Render(m)

	res.Changed = !bytes.Equal(data, formatted)
	if !res.Changed || opts.Check {
		return res
	}

	if err := atomicWrite(fsys, path, formatted); err != nil {
		res.Err = err
		res.Changed = false
		res.Bag.Add(diag.Diagnostic{
			Severity: diag.SevError,
			Code:     diag.CodeFilesystem,
			Message:  err.Error(),
			Path:     path,
		})
	}
	return res
}

// parseDiagnostic converts a parse failure into a renderable diagnostic
// with the offending source line attached.
func parseDiagnostic(path string, data []byte, err error) diag.Diagnostic {
	d := diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.CodeParse,
		Message:  err.Error(),
		Path:     path,
	}
	var pe *tomlscan.ParseError
	if errors.As(err, &pe) {
		d.Message = pe.Msg
		d.Line = pe.Line
		d.Col = pe.Col
		if pe.Line > 0 {
			lines := strings.Split(string(data), "\n")
			if pe.Line <= len(lines) {
				d.Snippet = lines[pe.Line-1]
			}
		}
	}
	return d
}
