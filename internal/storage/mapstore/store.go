// Package mapstore persists imported zones in a bbolt database so that a
// client can start without re-parsing map files.
package mapstore

import (
	"errors"
	"fmt"
	"sort"

	bbolt "go.etcd.io/bbolt"

	"github.com/outlander-app/outlander-sub000/internal/mapper"
)

// ErrZoneNotFound is returned by GetZone for an unknown zone ID.
var ErrZoneNotFound = errors.New("zone not found")

var bucketZones = []byte("zones")

// Store wraps a bbolt database holding one record per zone.
type Store struct {
	bolt *bbolt.DB
}

// Open opens or creates a bbolt database file and ensures its bucket exists.
func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("mapstore: open %s: %w", path, err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketZones)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("mapstore: create buckets: %w", err)
	}
	return &Store{bolt: db}, nil
}

// Close closes the underlying bbolt database.
func (s *Store) Close() error {
	if s.bolt != nil {
		return s.bolt.Close()
	}
	return nil
}

// Path returns the filesystem path of the underlying bbolt database.
func (s *Store) Path() string {
	if s.bolt != nil {
		return s.bolt.Path()
	}
	return ""
}

// PutZone persists zone, replacing any stored zone with the same ID.
func (s *Store) PutZone(zone *mapper.Zone) error {
	data, err := encodeZone(zone)
	if err != nil {
		return fmt.Errorf("mapstore: encode zone %q: %w", zone.ID, err)
	}
	return s.bolt.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketZones).Put([]byte(zone.ID), data)
	})
}

// GetZone loads the zone with the given ID.
func (s *Store) GetZone(id string) (*mapper.Zone, error) {
	var data []byte
	err := s.bolt.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(bucketZones).Get([]byte(id))
		if v == nil {
			return fmt.Errorf("mapstore: zone %q: %w", id, ErrZoneNotFound)
		}
		data = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	zone, err := decodeZone(data)
	if err != nil {
		return nil, fmt.Errorf("mapstore: decode zone %q: %w", id, err)
	}
	return zone, nil
}

// DeleteZone removes a zone. Deleting an unknown ID is not an error.
func (s *Store) DeleteZone(id string) error {
	return s.bolt.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketZones).Delete([]byte(id))
	})
}

// ZoneIDs returns the stored zone IDs in sorted order.
func (s *Store) ZoneIDs() ([]string, error) {
	ids := []string{}
	err := s.bolt.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketZones).ForEach(func(k, _ []byte) error {
			ids = append(ids, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("mapstore: list zones: %w", err)
	}
	sort.Strings(ids)
	return ids, nil
}

// LoadAll decodes every stored zone, ordered by zone ID.
func (s *Store) LoadAll() ([]*mapper.Zone, error) {
	var zones []*mapper.Zone
	err := s.bolt.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketZones).ForEach(func(k, v []byte) error {
			zone, err := decodeZone(v)
			if err != nil {
				return fmt.Errorf("decode zone %q: %w", k, err)
			}
			zones = append(zones, zone)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("mapstore: load zones: %w", err)
	}
	return zones, nil
}
