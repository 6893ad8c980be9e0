package genie_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/outlander-app/outlander-sub000/internal/importer/genie"
)

const crossingXML = `<?xml version="1.0" encoding="utf-8"?>
<zone name="The Crossing" id="1">
  <node id="1" name="[Town Green, Northwest]" note="Green|TGNW" color="#00FF00">
    <description>Tall trees shade the green.</description>
    <description>Snow blankets the green.</description>
    <position x="-20" y="40" z="0" />
    <arc exit="east" move="east" destination="2" />
    <arc exit="go" move="go footbridge" destination="2" hidden="True" />
    <arc exit="climb" move="climb wall" destination="" />
  </node>
  <node id="2" name="[Town Green, North]">
    <description>A statue stands here.</description>
    <position x="0" y="40" z="0" />
    <arc exit="west" move="west" destination="1" />
    <arc exit="go" move="go gate" destination="88" />
  </node>
  <node id="2" name="[Duplicate]">
    <position x="0" y="0" z="0" />
  </node>
  <label text="Town Green">
    <position x="0" y="20" z="0" />
  </label>
</zone>
`

func TestParseZone(t *testing.T) {
	zone, err := genie.ParseZone([]byte(crossingXML))
	require.NoError(t, err)

	assert.Equal(t, "1", zone.ID)
	assert.Equal(t, "The Crossing", zone.Name)
	require.Len(t, zone.Nodes, 3)

	first := zone.Nodes[0]
	assert.Equal(t, "[Town Green, Northwest]", first.Name)
	assert.Equal(t, "Green|TGNW", first.Note)
	assert.Equal(t, "#00FF00", first.Color)
	assert.Equal(t, []string{"Tall trees shade the green.", "Snow blankets the green."}, first.Descriptions)
	assert.Equal(t, genie.Position{X: -20, Y: 40, Z: 0}, first.Position)
	require.Len(t, first.Arcs, 3)
	assert.Equal(t, "go footbridge", first.Arcs[1].Move)
	assert.Equal(t, "True", first.Arcs[1].Hidden)
}

func TestParseZone_ByteOrderMark(t *testing.T) {
	zone, err := genie.ParseZone(append([]byte("\xef\xbb\xbf"), crossingXML...))
	require.NoError(t, err)
	assert.Equal(t, "The Crossing", zone.Name)
}

func TestParseZone_Invalid(t *testing.T) {
	_, err := genie.ParseZone([]byte("<zone><node></zone>"))
	assert.Error(t, err)

	_, err = genie.ParseZone([]byte(`<map name="x"></map>`))
	assert.Error(t, err)
}
