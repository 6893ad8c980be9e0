package importer_test

import (
	"testing"
	"unicode"

	"github.com/outlander-app/outlander-sub000/internal/importer"
	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestNameToID_Charset(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		name := rapid.StringOf(rapid.RuneFrom(nil, unicode.Letter, unicode.Digit, unicode.Punct, unicode.Space)).Draw(t, "name")
		id := importer.NameToID(name)
		for _, r := range id {
			assert.True(t, r == '_' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'),
				"unexpected char %q in id %q", r, id)
		}
		assert.NotContains(t, id, "__")
	})
}

func TestNameToID_Idempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		name := rapid.StringOf(rapid.RuneFrom(nil, unicode.Letter, unicode.Digit, unicode.Punct, unicode.Space)).Draw(t, "name")
		id := importer.NameToID(name)
		assert.Equal(t, id, importer.NameToID(id))
	})
}

func TestNameToID_KnownValues(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"The Crossing", "the_crossing"},
		{"Map1_Crossing", "map1_crossing"},
		{"  Leth Deriel -- Ferry  ", "leth_deriel_ferry"},
		{"Riverhaven (East)", "riverhaven_east"},
		{"Shard's Wall", "shard_s_wall"},
		{"***", ""},
	}
	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.want, importer.NameToID(tc.input))
		})
	}
}

func TestZoneID(t *testing.T) {
	assert.Equal(t, "1", importer.ZoneID(" 1 ", "The Crossing", "Map1_Crossing.xml"))
	assert.Equal(t, "the_crossing", importer.ZoneID("", "The Crossing", "Map1_Crossing.xml"))
	assert.Equal(t, "map1_crossing", importer.ZoneID("", "", "maps/Map1_Crossing.xml.zst"))
}
