package genie

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

// utf8BOM prefixes map files saved by Windows tools.
var utf8BOM = []byte("\xef\xbb\xbf")

// ParseZone parses a Genie map XML document.
//
// Postcondition: returns a non-nil Zone or a non-nil error.
func ParseZone(data []byte) (*Zone, error) {
	var z Zone
	if err := xml.Unmarshal(bytes.TrimPrefix(data, utf8BOM), &z); err != nil {
		return nil, fmt.Errorf("parsing genie map: %w", err)
	}
	return &z, nil
}
