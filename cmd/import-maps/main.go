// Package main provides the import-maps binary that converts Genie XML map
// files into zone files and, optionally, a map store.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/outlander-app/outlander-sub000/internal/config"
	"github.com/outlander-app/outlander-sub000/internal/importer"
	"github.com/outlander-app/outlander-sub000/internal/importer/genie"
	"github.com/outlander-app/outlander-sub000/internal/observability"
	"github.com/outlander-app/outlander-sub000/internal/storage/mapstore"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file (optional)")
	sourceDir := flag.String("source", "", "path to Genie map directory")
	outputDir := flag.String("output", "", "path to output zone directory (default: maps.dir)")
	storePath := flag.String("store", "", "bbolt map store to import into (default: maps.store)")
	noFiles := flag.Bool("no-files", false, "skip zone file output; store only")
	compress := flag.Bool("compress", false, "write zstd-compressed .yaml.zst zone files")
	flag.Parse()

	if *sourceDir == "" {
		fmt.Fprintln(os.Stderr, "usage: import-maps -source <dir> [-output <dir>] [-store <file>] [-compress] [-no-files] [-config <file>]")
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	out := *outputDir
	if out == "" {
		out = cfg.Maps.Dir
	}
	if *noFiles {
		out = ""
	}
	dbPath := *storePath
	if dbPath == "" {
		dbPath = cfg.Maps.Store
	}
	if out == "" && dbPath == "" {
		logger.Fatal("nothing to do: -no-files set and no store configured")
	}

	opts := []importer.Option{
		importer.WithLogger(logger),
		importer.WithCompression(*compress || cfg.Maps.Compress),
	}
	if dbPath != "" {
		store, err := mapstore.Open(dbPath)
		if err != nil {
			logger.Fatal("opening map store", zap.String("path", dbPath), zap.Error(err))
		}
		defer func() {
			if err := store.Close(); err != nil {
				logger.Error("closing map store", zap.Error(err))
			}
		}()
		opts = append(opts, importer.WithStore(store))
	}

	start := time.Now()
	results, err := importer.New(genie.NewSource(logger), opts...).Run(os.DirFS(*sourceDir), out)
	if err != nil {
		logger.Error("import failed", zap.String("source", *sourceDir), zap.Error(err))
		os.Exit(1)
	}

	rooms := 0
	for _, r := range results {
		rooms += r.Rooms
	}
	fmt.Printf("imported %d zone(s), %d room(s) in %s\n",
		len(results), rooms, time.Since(start).Round(time.Millisecond))
}
