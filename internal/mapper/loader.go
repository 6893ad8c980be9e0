package mapper

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/klauspost/compress/zstd"
	"gopkg.in/yaml.v3"
)

// ZoneFile is the top-level YAML structure for zone files.
type ZoneFile struct {
	Zone ZoneSpec `yaml:"zone"`
}

// ZoneSpec is the YAML representation of a zone.
type ZoneSpec struct {
	ID    string     `yaml:"id"`
	Name  string     `yaml:"name"`
	Rooms []RoomSpec `yaml:"rooms"`
}

// RoomSpec is the YAML representation of a room.
type RoomSpec struct {
	ID           string       `yaml:"id"`
	Name         string       `yaml:"name"`
	Descriptions []string     `yaml:"descriptions,omitempty"`
	Notes        []string     `yaml:"notes,omitempty"`
	Color        string       `yaml:"color,omitempty"`
	Position     PositionSpec `yaml:"position"`
	Arcs         []ArcSpec    `yaml:"arcs,omitempty"`
}

// PositionSpec is the YAML representation of a position.
type PositionSpec struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	Z int `yaml:"z"`
}

// ArcSpec is the YAML representation of an arc.
type ArcSpec struct {
	Exit        string `yaml:"exit"`
	Move        string `yaml:"move"`
	Destination string `yaml:"destination"`
	Hidden      bool   `yaml:"hidden,omitempty"`
}

// zstdSuffix marks a zstd-compressed zone file.
const zstdSuffix = ".zst"

// LoadZoneFromFile reads and validates a single zone file. Files ending in
// ".zst" are zstd-decompressed first.
//
// Postcondition: Returns a validated Zone or a non-nil error.
func LoadZoneFromFile(p string) (*Zone, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("reading zone file %s: %w", p, err)
	}
	return loadNamed(p, data)
}

// LoadZoneFromFS reads and validates the zone file name from fsys.
//
// Postcondition: Returns a validated Zone or a non-nil error.
func LoadZoneFromFS(fsys fs.FS, name string) (*Zone, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("reading zone file %s: %w", name, err)
	}
	return loadNamed(name, data)
}

func loadNamed(name string, data []byte) (*Zone, error) {
	if strings.HasSuffix(name, zstdSuffix) {
		raw, err := Decompress(data)
		if err != nil {
			return nil, fmt.Errorf("decompressing zone file %s: %w", name, err)
		}
		data = raw
	}
	zone, err := LoadZoneFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("loading zone file %s: %w", name, err)
	}
	return zone, nil
}

// LoadZoneFromBytes parses and validates a zone from YAML bytes.
//
// Postcondition: Returns a validated Zone or a non-nil error.
func LoadZoneFromBytes(data []byte) (*Zone, error) {
	var file ZoneFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing zone YAML: %w", err)
	}
	zone, err := BuildZone(file.Zone)
	if err != nil {
		return nil, err
	}
	if err := zone.Validate(); err != nil {
		return nil, fmt.Errorf("validating zone: %w", err)
	}
	return zone, nil
}

// LoadZonesFromDir loads every zone file in dir (".yaml", ".yml", and their
// ".zst" forms) in file name order.
//
// Postcondition: Returns all validated zones or the first error encountered.
func LoadZonesFromDir(dir string) ([]*Zone, error) {
	return LoadZonesFromFS(os.DirFS(dir), ".")
}

// LoadZonesFromFS is LoadZonesFromDir over an fs.FS.
func LoadZonesFromFS(fsys fs.FS, dir string) ([]*Zone, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("reading zone directory %s: %w", dir, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var zones []*Zone
	for _, entry := range entries {
		if entry.IsDir() || !IsZoneFile(entry.Name()) {
			continue
		}
		zone, err := LoadZoneFromFS(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		zones = append(zones, zone)
	}

	if len(zones) == 0 {
		return nil, fmt.Errorf("no zone files found in %s", dir)
	}
	return zones, nil
}

// IsZoneFile reports whether name looks like a zone file.
func IsZoneFile(name string) bool {
	name = strings.TrimSuffix(name, zstdSuffix)
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}

// BuildZone converts a parsed ZoneSpec into a Zone, registering rooms in
// file order.
//
// Postcondition: Returns a Zone or an error wrapping ErrDuplicateRoom.
func BuildZone(spec ZoneSpec) (*Zone, error) {
	zone := NewZone(spec.ID, spec.Name)
	for _, rs := range spec.Rooms {
		room := &Room{
			ID:           rs.ID,
			Name:         rs.Name,
			Descriptions: rs.Descriptions,
			Notes:        rs.Notes,
			Color:        rs.Color,
			Position:     Position{X: rs.Position.X, Y: rs.Position.Y, Z: rs.Position.Z},
		}
		for _, as := range rs.Arcs {
			room.Arcs = append(room.Arcs, Arc{
				Exit:        Direction(as.Exit),
				Move:        as.Move,
				Destination: as.Destination,
				Hidden:      as.Hidden,
			})
		}
		if err := zone.AddRoom(room); err != nil {
			return nil, err
		}
	}
	return zone, nil
}

// SpecFromZone is the inverse of BuildZone.
func SpecFromZone(zone *Zone) ZoneSpec {
	spec := ZoneSpec{ID: zone.ID, Name: zone.Name}
	for _, room := range zone.Rooms() {
		rs := RoomSpec{
			ID:           room.ID,
			Name:         room.Name,
			Descriptions: room.Descriptions,
			Notes:        room.Notes,
			Color:        room.Color,
			Position:     PositionSpec{X: room.Position.X, Y: room.Position.Y, Z: room.Position.Z},
		}
		for _, arc := range room.Arcs {
			rs.Arcs = append(rs.Arcs, ArcSpec{
				Exit:        string(arc.Exit),
				Move:        arc.Move,
				Destination: arc.Destination,
				Hidden:      arc.Hidden,
			})
		}
		spec.Rooms = append(spec.Rooms, rs)
	}
	return spec
}

// Compress zstd-encodes data.
func Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, err
	}
	if _, err := enc.Write(data); err != nil {
		_ = enc.Close()
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decompress decodes zstd-encoded data.
func Decompress(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return io.ReadAll(dec)
}
