// Package main provides the mapper binary: it loads zones from a directory or
// map store and prints the moves between two rooms.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/outlander-app/outlander-sub000/internal/config"
	"github.com/outlander-app/outlander-sub000/internal/mapper"
	"github.com/outlander-app/outlander-sub000/internal/observability"
	"github.com/outlander-app/outlander-sub000/internal/route"
	"github.com/outlander-app/outlander-sub000/internal/storage/mapstore"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// errUsage marks argument errors; flag has already printed usage.
var errUsage = errors.New("invalid arguments")

func run(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("mapper", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to configuration file (optional)")
	mapsDir := fs.String("maps", "", "zone directory (default: maps.dir)")
	storePath := fs.String("store", "", "bbolt map store (default: maps.store)")
	zoneID := fs.String("zone", "", "zone ID to search")
	from := fs.String("from", "", "start room: ID, note, or name")
	to := fs.String("to", "", "target room: ID, note, or name")
	steps := fs.Bool("steps", false, "print one command per line, splitting compound moves")
	noHidden := fs.Bool("no-hidden", false, "never traverse hidden arcs")
	list := fs.Bool("list", false, "list loaded zones and exit")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if !*list && (*zoneID == "" || *from == "" || *to == "") {
		fs.Usage()
		return errUsage
	}

	v := config.NewViper()
	if *configPath != "" {
		v.SetConfigFile(*configPath)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file: %w", err)
		}
	}
	if *mapsDir != "" {
		v.Set("maps.dir", *mapsDir)
		v.Set("maps.store", "")
	}
	if *storePath != "" {
		v.Set("maps.store", *storePath)
	}
	if *noHidden {
		v.Set("pathfinding.include_hidden", false)
	}
	cfg, err := config.LoadFromViper(v)
	if err != nil {
		return err
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	zones, err := loadZones(cfg.Maps)
	if err != nil {
		return err
	}
	mgr, err := mapper.NewManager(zones)
	if err != nil {
		return fmt.Errorf("creating zone manager: %w", err)
	}
	logger.Info("zones loaded",
		zap.Int("zones", mgr.ZoneCount()),
		zap.Int("rooms", mgr.RoomCount()))

	if *list {
		for _, z := range mgr.Zones() {
			fmt.Fprintf(stdout, "%s\t%s\t%d rooms\n", z.ID, z.Name, z.RoomCount())
		}
		return nil
	}

	finder := mapper.NewPathfinder(
		mapper.WithHiddenArcs(cfg.Pathfinding.IncludeHidden),
		mapper.WithMaxExpansions(cfg.Pathfinding.MaxExpansions),
	)
	planner := route.NewPlanner(mgr,
		route.WithPathfinder(finder),
		route.WithFuzzyThreshold(cfg.Lookup.FuzzyThreshold),
		route.WithTimeout(cfg.Pathfinding.Timeout),
		route.WithLogger(logger),
	)
	plan, err := planner.Plan(ctx, *zoneID, *from, *to)
	if err != nil {
		return err
	}
	if !plan.Found() {
		return fmt.Errorf("no route from %s to %s in zone %q", plan.From.ID, plan.To.ID, *zoneID)
	}

	if *steps {
		for _, s := range plan.Steps() {
			fmt.Fprintln(stdout, s)
		}
		return nil
	}
	fmt.Fprintf(stdout, "%s -> %s (%d moves)\n", roomLabel(plan.From), roomLabel(plan.To), len(plan.Moves))
	if len(plan.Moves) > 0 {
		fmt.Fprintln(stdout, strings.Join(plan.Moves, ", "))
	}
	return nil
}

func loadZones(cfg config.MapsConfig) ([]*mapper.Zone, error) {
	if cfg.Store == "" {
		return mapper.LoadZonesFromDir(cfg.Dir)
	}
	store, err := mapstore.Open(cfg.Store)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	return store.LoadAll()
}

func roomLabel(r *mapper.Room) string {
	if r.Name == "" {
		return r.ID
	}
	return fmt.Sprintf("%s %s", r.ID, r.Name)
}
