// Package tomlscan adapts raw manifest text into a structured form the
// document model builder can consume: a typed value tree decoded by the
// TOML library, plus a line-level segmentation of the same text into
// sections and entries with their verbatim bytes and leading comments.
//
// The scanner only ever runs on text the TOML library has already
// validated, so it does not need to be a parser itself; it tracks just
// enough state (multi-line strings, bracket depth) to tell entry lines
// apart from continuation lines.
package tomlscan
