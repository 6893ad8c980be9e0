package importer

import (
	"path"
	"strings"
	"unicode"
)

// NameToID converts a display name to a stable snake_case identifier. Runs of
// characters other than ASCII letters and digits collapse to one underscore;
// leading and trailing underscores are dropped.
//
// Postcondition: result is lowercase, contains only [a-z0-9_], and is
// idempotent (NameToID(NameToID(s)) == NameToID(s)).
func NameToID(name string) string {
	var b strings.Builder
	pending := false
	for _, r := range strings.ToLower(name) {
		if r > unicode.MaxASCII || !(unicode.IsLetter(r) || unicode.IsDigit(r)) {
			pending = b.Len() > 0
			continue
		}
		if pending {
			b.WriteByte('_')
			pending = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ZoneID picks the ID for an imported zone: the declared ID when present,
// else NameToID of the zone name, else NameToID of the file's base name.
func ZoneID(declared, name, file string) string {
	if id := strings.TrimSpace(declared); id != "" {
		return id
	}
	if id := NameToID(name); id != "" {
		return id
	}
	base := path.Base(file)
	if i := strings.IndexByte(base, '.'); i > 0 {
		base = base[:i]
	}
	return NameToID(base)
}
