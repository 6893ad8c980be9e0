package importer

import (
	"io/fs"

	"github.com/outlander-app/outlander-sub000/internal/mapper"
)

// Source loads zones from a format-specific map tree and returns them in the
// project's zone schema.
//
// fsys is the content root; sources read through it only, so callers may
// pass os.DirFS or an in-memory fs.
// Postcondition: returns at least one ZoneSpec, or a non-nil error.
type Source interface {
	Load(fsys fs.FS) ([]mapper.ZoneSpec, error)
}
