// Package genie imports Genie-format XML map files.
package genie

import (
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/outlander-app/outlander-sub000/internal/importer"
	"github.com/outlander-app/outlander-sub000/internal/mapper"
)

var _ importer.Source = (*Source)(nil)

// Source implements importer.Source for a flat directory of Genie map files
// ("*.xml", optionally zstd-compressed as "*.xml.zst").
type Source struct {
	logger *zap.Logger
}

// NewSource constructs a Source. A nil logger discards warnings.
func NewSource(logger *zap.Logger) *Source {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Source{logger: logger}
}

// Load reads every map file at the root of fsys in file name order.
// Conversion warnings are logged.
//
// Postcondition: returns at least one ZoneSpec or a non-nil error.
func (s *Source) Load(fsys fs.FS) ([]mapper.ZoneSpec, error) {
	files, err := mapFiles(fsys)
	if err != nil {
		return nil, err
	}

	var specs []mapper.ZoneSpec
	for _, name := range files {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("reading map file %s: %w", name, err)
		}
		if strings.HasSuffix(name, ".zst") {
			if data, err = mapper.Decompress(data); err != nil {
				return nil, fmt.Errorf("decompressing map file %s: %w", name, err)
			}
		}
		zone, err := ParseZone(data)
		if err != nil {
			return nil, fmt.Errorf("parsing map file %s: %w", name, err)
		}
		spec, warnings := ConvertZone(zone, name)
		for _, w := range warnings {
			s.logger.Warn(w, zap.String("file", name))
		}
		specs = append(specs, spec)
	}

	if len(specs) == 0 {
		return nil, fmt.Errorf("no map files found")
	}
	return specs, nil
}

func mapFiles(fsys fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("reading map directory: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := strings.TrimSuffix(e.Name(), ".zst")
		if strings.HasSuffix(strings.ToLower(name), ".xml") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
