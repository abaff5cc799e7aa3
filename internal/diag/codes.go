package diag

// Code identifies a diagnostic category.
type Code uint16

const (
	CodeUnknown Code = iota
	// CodeParse reports TOML that is not syntactically valid.
	CodeParse
	// CodeUnsupportedConstruct reports a recognized key holding an
	// irregularly-shaped value that was preserved verbatim.
	CodeUnsupportedConstruct
	// CodeFilesystem reports a read, write, or rename failure.
	CodeFilesystem
	// CodeWorkspace reports a workspace member enumeration failure.
	CodeWorkspace
)

func (c Code) String() string {
	switch c {
	case CodeParse:
		return "parse"
	case CodeUnsupportedConstruct:
		return "unsupported-construct"
	case CodeFilesystem:
		return "filesystem"
	case CodeWorkspace:
		return "workspace"
	}
	return "unknown"
}
