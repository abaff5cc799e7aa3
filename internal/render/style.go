package render

const (
	arrayIndent = "    "
)

// prettyArrayKeys lists the keys whose array values render one element
// per line when they hold more than one element. Everything else stays
// on a single line.
var prettyArrayKeys = map[string]bool{
	"authors":         true,
	"keywords":        true,
	"categories":      true,
	"exclude":         true,
	"include":         true,
	"publish":         true,
	"members":         true,
	"default-members": true,
}
