package genie

import (
	"fmt"
	"strings"

	"github.com/outlander-app/outlander-sub000/internal/importer"
	"github.com/outlander-app/outlander-sub000/internal/mapper"
)

// ConvertZone transforms a parsed Genie zone into the project's zone schema.
// file is the source file name, used for the zone ID when the map declares
// neither an ID nor a name.
//
// Recoverable issues do not fail the conversion; they are returned as
// warnings: a repeated node ID keeps the first node, and an arc without a
// destination is dropped.
//
// Postcondition: returns a ZoneSpec with unique room IDs and arcs in file
// order, and a (possibly empty) slice of warnings.
func ConvertZone(zone *Zone, file string) (mapper.ZoneSpec, []string) {
	var warnings []string

	spec := mapper.ZoneSpec{
		ID:   importer.ZoneID(zone.ID, zone.Name, file),
		Name: strings.TrimSpace(zone.Name),
	}

	seen := make(map[string]bool, len(zone.Nodes))
	for _, node := range zone.Nodes {
		id := strings.TrimSpace(node.ID)
		if id == "" {
			warnings = append(warnings, fmt.Sprintf("zone %q: node %q has no id; skipping", spec.ID, node.Name))
			continue
		}
		if seen[id] {
			warnings = append(warnings, fmt.Sprintf("zone %q: duplicate node id %q; keeping the first", spec.ID, id))
			continue
		}
		seen[id] = true

		room := mapper.RoomSpec{
			ID:           id,
			Name:         strings.TrimSpace(node.Name),
			Descriptions: trimAll(node.Descriptions),
			Notes:        splitNote(node.Note),
			Color:        strings.TrimSpace(node.Color),
			Position:     mapper.PositionSpec{X: node.Position.X, Y: node.Position.Y, Z: node.Position.Z},
		}
		for _, arc := range node.Arcs {
			dest := strings.TrimSpace(arc.Destination)
			if dest == "" {
				warnings = append(warnings, fmt.Sprintf(
					"zone %q: node %q: %s arc has no destination; dropping arc", spec.ID, id, arc.Exit))
				continue
			}
			room.Arcs = append(room.Arcs, mapper.ArcSpec{
				Exit:        strings.ToLower(strings.TrimSpace(arc.Exit)),
				Move:        strings.TrimSpace(arc.Move),
				Destination: dest,
				Hidden:      strings.EqualFold(strings.TrimSpace(arc.Hidden), "true"),
			})
		}
		spec.Rooms = append(spec.Rooms, room)
	}

	return spec, warnings
}

func trimAll(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// splitNote splits a Genie note attribute into its "|" separated aliases.
func splitNote(note string) []string {
	if strings.TrimSpace(note) == "" {
		return nil
	}
	return trimAll(strings.Split(note, "|"))
}
