// Package importer converts third-party map files into the project's zone
// file format.
package importer

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/outlander-app/outlander-sub000/internal/mapper"
)

// ZoneStore persists imported zones. *mapstore.Store satisfies it.
type ZoneStore interface {
	PutZone(zone *mapper.Zone) error
}

// Importer orchestrates content import from a Source to an output directory
// and, optionally, a ZoneStore.
type Importer struct {
	source   Source
	logger   *zap.Logger
	store    ZoneStore
	compress bool
}

// Option configures an Importer.
type Option func(*Importer)

// WithLogger sets the logger. Default: a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(imp *Importer) {
		if logger != nil {
			imp.logger = logger
		}
	}
}

// WithStore also writes every imported zone to store.
func WithStore(store ZoneStore) Option {
	return func(imp *Importer) {
		imp.store = store
	}
}

// WithCompression writes zone files as zstd-compressed ".yaml.zst".
func WithCompression(compress bool) Option {
	return func(imp *Importer) {
		imp.compress = compress
	}
}

// New constructs an Importer backed by the given Source.
//
// Precondition: source must be non-nil.
func New(source Source, opts ...Option) *Importer {
	imp := &Importer{source: source, logger: zap.NewNop()}
	for _, o := range opts {
		o(imp)
	}
	return imp
}

// Result describes one imported zone.
type Result struct {
	ZoneID string
	Rooms  int
	Path   string
}

// Run loads zones from fsys, validates each, and writes them to outputDir as
// <zone_id>.yaml (or .yaml.zst). An empty outputDir skips file output, which
// is useful when only a store is wanted.
//
// Postcondition: every zone is written and stored, or an error is returned.
func (imp *Importer) Run(fsys fs.FS, outputDir string) ([]Result, error) {
	overall := time.Now()

	specs, err := imp.source.Load(fsys)
	if err != nil {
		return nil, fmt.Errorf("loading source: %w", err)
	}
	imp.logger.Info("source loaded", zap.Int("zones", len(specs)))

	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return nil, fmt.Errorf("creating output directory %s: %w", outputDir, err)
		}
	}

	results := make([]Result, 0, len(specs))
	for _, spec := range specs {
		res, err := imp.importZone(spec, outputDir)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}

	imp.logger.Info("import complete",
		zap.Int("zones", len(results)),
		zap.Duration("elapsed", time.Since(overall).Round(time.Millisecond)))
	return results, nil
}

func (imp *Importer) importZone(spec mapper.ZoneSpec, outputDir string) (Result, error) {
	data, err := yaml.Marshal(mapper.ZoneFile{Zone: spec})
	if err != nil {
		return Result{}, fmt.Errorf("serialising zone %q: %w", spec.ID, err)
	}

	// Validate output is loadable before writing.
	zone, err := mapper.LoadZoneFromBytes(data)
	if err != nil {
		return Result{}, fmt.Errorf("zone %q failed validation: %w", spec.ID, err)
	}
	for _, ow := range zone.OneWayArcs() {
		imp.logger.Debug("one-way arc",
			zap.String("zone", zone.ID),
			zap.String("room", ow.From),
			zap.String("exit", string(ow.Arc.Exit)),
			zap.String("destination", ow.Arc.Destination))
	}

	res := Result{ZoneID: zone.ID, Rooms: zone.RoomCount()}
	if outputDir != "" {
		name := zone.ID + ".yaml"
		if imp.compress {
			if data, err = mapper.Compress(data); err != nil {
				return Result{}, fmt.Errorf("compressing zone %q: %w", zone.ID, err)
			}
			name += ".zst"
		}
		res.Path = filepath.Join(outputDir, name)
		if err := os.WriteFile(res.Path, data, 0644); err != nil {
			return Result{}, fmt.Errorf("writing zone %q to %s: %w", zone.ID, res.Path, err)
		}
	}
	if imp.store != nil {
		if err := imp.store.PutZone(zone); err != nil {
			return Result{}, fmt.Errorf("storing zone %q: %w", zone.ID, err)
		}
	}

	imp.logger.Info("zone imported",
		zap.String("zone", zone.ID),
		zap.Int("rooms", res.Rooms),
		zap.String("path", res.Path))
	return res, nil
}
