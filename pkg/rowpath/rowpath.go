// Package rowpath maps filesystem paths onto row keys. The served tree
// is flat: the only directory is "/", and every file is "/" followed by
// the decimal digits of a row's name value.
package rowpath

// Kind classifies a path.
type Kind int

const (
	// Invalid is anything other than the root or a record path.
	Invalid Kind = iota
	// Root is the directory "/".
	Root
	// Record is "/" followed by a valid row key.
	Record
)

func (k Kind) String() string {
	switch k {
	case Root:
		return "root"
	case Record:
		return "record"
	default:
		return "invalid"
	}
}

// Path is a classified path. Key holds the digit string for Record
// paths and is empty otherwise.
type Path struct {
	Kind Kind
	Key  string
}

// ValidKey reports whether name is a well-formed row key: one or more
// ASCII decimal digits and nothing else. No sign, no dot, and no length
// cap; the key is compared as a bound query parameter, never parsed
// into a machine integer.
func ValidKey(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		if name[i] < '0' || name[i] > '9' {
			return false
		}
	}
	return true
}

// Parse classifies path. "/" is the root; "/" followed by a valid key
// is that row's record path; everything else, including empty strings,
// relative paths, doubled slashes, and nested names, is Invalid. Parse
// is purely lexical: whether a record's row exists is decided at query
// time.
func Parse(path string) Path {
	if path == "/" {
		return Path{Kind: Root}
	}
	if len(path) < 2 || path[0] != '/' {
		return Path{Kind: Invalid}
	}
	key := path[1:]
	if !ValidKey(key) {
		return Path{Kind: Invalid}
	}
	return Path{Kind: Record, Key: key}
}
