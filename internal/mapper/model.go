// Package mapper provides the automapper graph model: zones, rooms, arcs,
// and the shortest-path search over them.
package mapper

import (
	"errors"
	"fmt"
	"strings"
)

// Direction is the exit label of an arc: a compass direction or a named
// traversal such as "go" or "climb".
type Direction string

// Standard compass directions and vertical movements.
const (
	North     Direction = "north"
	South     Direction = "south"
	East      Direction = "east"
	West      Direction = "west"
	Northeast Direction = "northeast"
	Northwest Direction = "northwest"
	Southeast Direction = "southeast"
	Southwest Direction = "southwest"
	Up        Direction = "up"
	Down      Direction = "down"
)

// Named exit labels used by map files.
const (
	Out   Direction = "out"
	Go    Direction = "go"
	Climb Direction = "climb"
	None  Direction = "none"
)

// StandardDirections contains all standard compass and vertical directions.
var StandardDirections = []Direction{
	North, South, East, West,
	Northeast, Northwest, Southeast, Southwest,
	Up, Down,
}

// IsStandard reports whether d is one of the ten standard directions.
func (d Direction) IsStandard() bool {
	for _, sd := range StandardDirections {
		if d == sd {
			return true
		}
	}
	return false
}

// Opposite returns the opposite of a standard direction.
// For named exits, it returns an empty string.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	case Northeast:
		return Southwest
	case Southwest:
		return Northeast
	case Northwest:
		return Southeast
	case Southeast:
		return Northwest
	case Up:
		return Down
	case Down:
		return Up
	default:
		return ""
	}
}

// Position is a display-only map coordinate. It carries no connectivity.
type Position struct {
	X int
	Y int
	Z int
}

// Arc is a directed edge from a room to a destination room.
type Arc struct {
	// Exit is the short exit label (compass direction, "go", "climb", ...).
	Exit Direction
	// Move is the literal command text. It may chain several sub-actions
	// separated by semicolons.
	Move string
	// Destination is the target room ID. It may name a room outside the zone.
	Destination string
	// Hidden marks an exit that is not advertised in the room's exit list.
	Hidden bool
}

// Room is a single location in a zone.
type Room struct {
	// ID uniquely identifies this room within its zone.
	ID string
	// Name is the room title as shown by the game.
	Name string
	// Descriptions holds every known variant of the room description, in
	// file order.
	Descriptions []string
	// Notes are free-form labels. A note may hold several "|" separated aliases.
	Notes []string
	// Color is the display color, e.g. "#FF0000". Empty means default.
	Color string
	// Position is the room's map coordinate.
	Position Position
	// Arcs are the outgoing edges in declared order. Order is significant.
	Arcs []Arc
}

// ArcTo returns the first declared arc whose destination is dest.
//
// Postcondition: Returns (arc, true) if found, or (Arc{}, false) otherwise.
func (r *Room) ArcTo(dest string) (Arc, bool) {
	for _, a := range r.Arcs {
		if a.Destination == dest {
			return a, true
		}
	}
	return Arc{}, false
}

// ArcForExit returns the first declared arc with the given exit label.
//
// Postcondition: Returns (arc, true) if found, or (Arc{}, false) otherwise.
func (r *Room) ArcForExit(exit Direction) (Arc, bool) {
	for _, a := range r.Arcs {
		if a.Exit == exit {
			return a, true
		}
	}
	return Arc{}, false
}

// VisibleArcs returns all non-hidden arcs from this room in declared order.
func (r *Room) VisibleArcs() []Arc {
	var visible []Arc
	for _, a := range r.Arcs {
		if !a.Hidden {
			visible = append(visible, a)
		}
	}
	return visible
}

// ErrDuplicateRoom is returned by AddRoom when a room ID is already registered.
var ErrDuplicateRoom = errors.New("duplicate room ID")

// ErrNoArc reports a path step with no connecting arc.
var ErrNoArc = errors.New("no arc between path steps")

// MoveError is returned by GetMoves when path[Index] has no arc to path[Index+1].
// A path that triggers it was not produced by the pathfinder.
type MoveError struct {
	Index int
	From  string
	To    string
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("path step %d: room %q has no arc to %q", e.Index, e.From, e.To)
}

// Unwrap returns ErrNoArc.
func (e *MoveError) Unwrap() error { return ErrNoArc }

// Zone is a named graph of rooms. A Zone is built once by a loader and must
// not be mutated after it is published to readers; all query methods are
// safe for concurrent use on a published Zone.
type Zone struct {
	// ID uniquely identifies this zone.
	ID string
	// Name is the display name of the zone.
	Name string

	rooms map[string]*Room
	order []string
}

// NewZone creates an empty zone.
func NewZone(id, name string) *Zone {
	return &Zone{
		ID:    id,
		Name:  name,
		rooms: make(map[string]*Room),
	}
}

// AddRoom registers room under its ID. The first registration of an ID wins:
// a later room with the same ID is rejected with ErrDuplicateRoom and the
// zone is left unchanged.
//
// Precondition: room must be non-nil.
func (z *Zone) AddRoom(room *Room) error {
	if z.rooms == nil {
		z.rooms = make(map[string]*Room)
	}
	if _, exists := z.rooms[room.ID]; exists {
		return fmt.Errorf("zone %q: room %q: %w", z.ID, room.ID, ErrDuplicateRoom)
	}
	z.rooms[room.ID] = room
	z.order = append(z.order, room.ID)
	return nil
}

// GetRoom returns the room with the given ID.
//
// Postcondition: Returns (room, true) if found, or (nil, false) otherwise.
func (z *Zone) GetRoom(id string) (*Room, bool) {
	r, ok := z.rooms[id]
	return r, ok
}

// Rooms returns all rooms in registration order.
func (z *Zone) Rooms() []*Room {
	rooms := make([]*Room, 0, len(z.order))
	for _, id := range z.order {
		rooms = append(rooms, z.rooms[id])
	}
	return rooms
}

// RoomCount returns the number of rooms in the zone.
func (z *Zone) RoomCount() int {
	return len(z.rooms)
}

// GetMoves translates a room-id path into move commands. For each
// consecutive pair it takes the Move of the first declared arc from the
// earlier room to the later one.
//
// Postcondition: len(moves) == max(len(path)-1, 0), or a *MoveError is
// returned for the first step that has no arc.
func (z *Zone) GetMoves(path []string) ([]string, error) {
	if len(path) < 2 {
		return []string{}, nil
	}
	moves := make([]string, 0, len(path)-1)
	for i := 0; i < len(path)-1; i++ {
		from, to := path[i], path[i+1]
		room, ok := z.rooms[from]
		if !ok {
			return nil, &MoveError{Index: i, From: from, To: to}
		}
		arc, ok := room.ArcTo(to)
		if !ok {
			return nil, &MoveError{Index: i, From: from, To: to}
		}
		moves = append(moves, arc.Move)
	}
	return moves, nil
}

// Validate checks zone invariants. Arc destinations outside the zone are
// allowed.
//
// Postcondition: Returns nil if valid, or an error describing the first violation.
func (z *Zone) Validate() error {
	if z.ID == "" {
		return errors.New("zone ID must not be empty")
	}
	for _, id := range z.order {
		room := z.rooms[id]
		if room.ID != id {
			return fmt.Errorf("zone %q: room key %q does not match room ID %q", z.ID, id, room.ID)
		}
		if strings.TrimSpace(id) == "" {
			return fmt.Errorf("zone %q: room ID must not be empty", z.ID)
		}
		for i, arc := range room.Arcs {
			if arc.Destination == "" {
				return fmt.Errorf("zone %q: room %q: arc %d (%q) has empty destination", z.ID, id, i, arc.Exit)
			}
		}
	}
	return nil
}

// OneWayArc describes a compass arc with no return arc in the opposite
// direction.
type OneWayArc struct {
	From string
	Arc  Arc
}

// OneWayArcs lists compass arcs whose destination is in the zone but has no
// arc back to the source in the opposite direction. Named exits and off-zone
// destinations are skipped. Results follow registration then arc order.
func (z *Zone) OneWayArcs() []OneWayArc {
	var out []OneWayArc
	for _, id := range z.order {
		room := z.rooms[id]
		for _, arc := range room.Arcs {
			if !arc.Exit.IsStandard() {
				continue
			}
			dest, ok := z.rooms[arc.Destination]
			if !ok {
				continue
			}
			back, ok := dest.ArcForExit(arc.Exit.Opposite())
			if ok && back.Destination == id {
				continue
			}
			out = append(out, OneWayArc{From: id, Arc: arc})
		}
	}
	return out
}

// Bounds returns the min and max positions over all rooms. An empty zone
// returns two zero positions.
func (z *Zone) Bounds() (lo, hi Position) {
	first := true
	for _, room := range z.rooms {
		p := room.Position
		if first {
			lo, hi = p, p
			first = false
			continue
		}
		lo.X, hi.X = min(lo.X, p.X), max(hi.X, p.X)
		lo.Y, hi.Y = min(lo.Y, p.Y), max(hi.Y, p.Y)
		lo.Z, hi.Z = min(lo.Z, p.Z), max(hi.Z, p.Z)
	}
	return lo, hi
}

// RoomsAt returns the rooms drawn at pos, in registration order.
func (z *Zone) RoomsAt(pos Position) []*Room {
	var out []*Room
	for _, id := range z.order {
		if z.rooms[id].Position == pos {
			out = append(out, z.rooms[id])
		}
	}
	return out
}
