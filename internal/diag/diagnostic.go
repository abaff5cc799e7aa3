package diag

// Diagnostic is a single report tied to a file position.
// Line and Col are 1-based; zero means "no position".
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Path     string
	Line     int
	Col      int
	// Snippet is the source line the diagnostic points at, if available.
	Snippet string
}
