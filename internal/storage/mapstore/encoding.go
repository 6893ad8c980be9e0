package mapstore

import (
	"bytes"
	"encoding/gob"

	"github.com/outlander-app/outlander-sub000/internal/mapper"
)

// zoneRecord is the stored form of a zone. Rooms and arcs keep their
// registration and declared order.
type zoneRecord struct {
	ID    string
	Name  string
	Rooms []mapper.RoomSpec
}

// encodeZone serializes a zone to bytes using gob.
func encodeZone(zone *mapper.Zone) ([]byte, error) {
	spec := mapper.SpecFromZone(zone)
	rec := zoneRecord{ID: spec.ID, Name: spec.Name, Rooms: spec.Rooms}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(&rec); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeZone deserializes bytes back into a zone.
func decodeZone(data []byte) (*mapper.Zone, error) {
	var rec zoneRecord
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&rec); err != nil {
		return nil, err
	}
	return mapper.BuildZone(mapper.ZoneSpec{ID: rec.ID, Name: rec.Name, Rooms: rec.Rooms})
}
