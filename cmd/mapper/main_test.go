package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/outlander-app/outlander-sub000/internal/mapper"
	"github.com/outlander-app/outlander-sub000/internal/route"
	"github.com/outlander-app/outlander-sub000/internal/storage/mapstore"
)

const fixtureDir = "../../internal/mapper/testdata"

func runMapper(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := run(context.Background(), args, &out)
	return out.String(), err
}

func TestRun_PrintsMoves(t *testing.T) {
	out, err := runMapper(t, "-maps", fixtureDir, "-zone", "crossing", "-from", "68", "-to", "bank")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "68 [Town Green, Northwest] -> 231 [Provincial Bank, Lobby] (12 moves)", lines[0])
	assert.Equal(t, "east, southeast, northeast, northeast, east, east, east, east, "+
		"northeast, go longbow bridge, northeast, go provincial bank", lines[1])
}

func TestRun_Steps(t *testing.T) {
	out, err := runMapper(t, "-maps", fixtureDir, "-zone", "crossing", "-from", "231", "-to", "68", "-steps")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"out", "southwest", "out", "southwest", "west", "west", "west", "west",
		"southwest", "southwest", "northwest", "west",
	}, strings.Fields(strings.ReplaceAll(out, "\n", " ")))
}

func TestRun_NoRoute(t *testing.T) {
	_, err := runMapper(t, "-maps", fixtureDir, "-zone", "crossing", "-from", "68", "-to", "395")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no route")
}

func TestRun_UnknownZone(t *testing.T) {
	_, err := runMapper(t, "-maps", fixtureDir, "-zone", "nowhere", "-from", "1", "-to", "2")
	assert.ErrorIs(t, err, route.ErrUnknownZone)
}

func TestRun_MissingArgs(t *testing.T) {
	_, err := runMapper(t, "-maps", fixtureDir, "-zone", "crossing")
	assert.ErrorIs(t, err, errUsage)

	_, err = runMapper(t, "-bogus")
	assert.ErrorIs(t, err, errUsage)
}

func TestRun_List(t *testing.T) {
	out, err := runMapper(t, "-maps", fixtureDir, "-list")
	require.NoError(t, err)
	assert.Equal(t, "crossing\tThe Crossing\t398 rooms\n", out)
}

func TestRun_FromStore(t *testing.T) {
	zone := mapper.NewZone("keep", "The Keep")
	require.NoError(t, zone.AddRoom(&mapper.Room{ID: "1", Name: "[Gate]", Arcs: []mapper.Arc{
		{Exit: mapper.Go, Move: "go gate;north", Destination: "2"},
	}}))
	require.NoError(t, zone.AddRoom(&mapper.Room{ID: "2", Name: "[Hall]"}))

	dbPath := filepath.Join(t.TempDir(), "maps.db")
	store, err := mapstore.Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, store.PutZone(zone))
	require.NoError(t, store.Close())

	out, err := runMapper(t, "-store", dbPath, "-zone", "keep", "-from", "gate", "-to", "hall", "-steps")
	require.NoError(t, err)
	assert.Equal(t, "go gate\nnorth\n", out)
}
