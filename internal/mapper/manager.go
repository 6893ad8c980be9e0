package mapper

import (
	"fmt"
	"sort"
	"sync"
)

// Manager holds the published zones. Zones handed to the Manager must be
// fully built; the Manager never mutates them, so readers may query a zone
// returned by Zone without locking.
type Manager struct {
	mu    sync.RWMutex
	zones map[string]*Zone
}

// NewManager creates a Manager from the given zones.
//
// Postcondition: Returns a Manager with every zone indexed by ID, or an
// error on a duplicate zone ID.
func NewManager(zones []*Zone) (*Manager, error) {
	m := &Manager{zones: make(map[string]*Zone, len(zones))}
	for _, z := range zones {
		if _, exists := m.zones[z.ID]; exists {
			return nil, fmt.Errorf("duplicate zone ID: %q", z.ID)
		}
		m.zones[z.ID] = z
	}
	return m, nil
}

// Publish makes zone visible to readers, replacing any zone with the same ID.
// Queries already running against the replaced zone keep their snapshot.
//
// Precondition: zone must be fully built and must not be mutated afterwards.
func (m *Manager) Publish(zone *Zone) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.zones[zone.ID] = zone
}

// Zone returns the zone with the given ID.
//
// Postcondition: Returns (zone, true) if found, or (nil, false) otherwise.
func (m *Manager) Zone(id string) (*Zone, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	z, ok := m.zones[id]
	return z, ok
}

// Zones returns all published zones sorted by ID.
//
// Postcondition: Returns a non-nil slice; may be empty.
func (m *Manager) Zones() []*Zone {
	m.mu.RLock()
	defer m.mu.RUnlock()
	zones := make([]*Zone, 0, len(m.zones))
	for _, z := range m.zones {
		zones = append(zones, z)
	}
	sort.Slice(zones, func(i, j int) bool { return zones[i].ID < zones[j].ID })
	return zones
}

// ZoneCount returns the number of published zones.
func (m *Manager) ZoneCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.zones)
}

// RoomCount returns the total number of rooms across all zones.
func (m *Manager) RoomCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, z := range m.zones {
		n += z.RoomCount()
	}
	return n
}
