// Package main is the entry point for RealmForge.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/samdwyer/realmforge/internal/config"
	"github.com/samdwyer/realmforge/internal/gamedata"
	"github.com/samdwyer/realmforge/internal/logging"
	"github.com/samdwyer/realmforge/internal/noise"
	"github.com/samdwyer/realmforge/internal/telemetry"
	"github.com/samdwyer/realmforge/internal/tiles"
	"github.com/samdwyer/realmforge/internal/ui"
	"github.com/samdwyer/realmforge/internal/world"
	"github.com/samdwyer/realmforge/internal/zone"
)

func main() {
	configPath := flag.String("config", "", "path to a config file (default ./realmforge.yaml if present)")
	seed := flag.Int64("seed", 0, "world seed, overrides config; 0 picks one at random")
	preview := flag.Bool("preview", false, "show the village in the terminal after generation")
	flag.Parse()

	// Load .env file for local development
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}
	setupOTelEnv()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	shutdown, err := telemetry.Setup(ctx, cfg.Telemetry.Enabled)
	if err != nil {
		logger.WithError(err).Warn("telemetry setup failed, continuing without traces")
	} else {
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				logger.WithError(err).Error("telemetry shutdown")
			}
		}()
	}

	if err := run(ctx, cfg, logger, *preview); err != nil {
		logger.WithError(err).Error("world build failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *logrus.Logger, preview bool) error {
	logger.WithField("seed", cfg.Seed).Info("building world")
	rng := rand.New(rand.NewSource(cfg.Seed))

	tables, err := gamedata.LoadBundle()
	if err != nil {
		return err
	}
	catalog, err := tiles.LoadCatalog(tables.Assets)
	if err != nil {
		return err
	}
	profiles, err := world.NewProfiles(tables.Biomes)
	if err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{
		"assets": catalog.Len(),
		"biomes": profiles.IDs(),
	}).Debug("tables loaded")

	genOpts := []world.Option{world.WithRand(rng), world.WithLogger(logger), world.WithProfiles(profiles)}
	if cfg.Noise.CacheMB > 0 {
		cache, err := noise.NewCache(int64(cfg.Noise.CacheMB) << 20)
		if err != nil {
			return err
		}
		defer cache.Close()
		genOpts = append(genOpts, world.WithNoiseCache(cache))
	}
	gen, err := world.NewGenerator(catalog, genOpts...)
	if err != nil {
		return err
	}

	mgr, err := zone.NewManager(gen,
		zone.WithRand(rng),
		zone.WithLogger(logger),
		zone.WithDefaultSize(cfg.Zone.Width, cfg.Zone.Height),
		zone.WithEnemyRegistry(gamedata.NewEnemyRegistry(tables.Enemies)),
		zone.WithRoster(tables.Population),
	)
	if err != nil {
		return err
	}

	village, err := mgr.Generate(ctx, zone.Request{
		Biome:  "village",
		Name:   "Eldergrove",
		Levels: zone.LevelRange{Min: 1, Max: 5},
	})
	if err != nil {
		return err
	}
	forest, err := mgr.Generate(ctx, zone.Request{
		Biome:  "forest",
		Levels: zone.LevelRange{Min: 2, Max: 5},
	})
	if err != nil {
		return err
	}

	exitA := world.Point{X: village.Map.Width - 1, Y: village.Map.Height / 2}
	exitB := world.Point{X: 0, Y: forest.Map.Height / 2}
	if err := mgr.Connect(village.ID, zone.East, forest.ID, exitA, exitB); err != nil {
		return err
	}
	for _, err := range mgr.ValidateConnections() {
		logger.WithError(err).Warn("connection check")
	}
	mgr.SetActive(village.ID)

	for _, id := range mgr.Zones() {
		z, _ := mgr.Get(id)
		printSummary(z)
	}

	if preview {
		return ui.Preview(ctx, village, catalog)
	}
	return nil
}

func printSummary(z *zone.Zone) {
	fmt.Printf("%s [%s] %s\n", z.Name, z.ID, z.Description)
	fmt.Printf("  %dx%d tiles, %d NPCs, %d enemies, %d quests\n",
		z.Map.Width, z.Map.Height, len(z.NPCs), len(z.Enemies), len(z.Quests))
	for _, dir := range zone.Directions() {
		if c, ok := z.Connection(dir); ok {
			fmt.Printf("  %s -> %s at (%d,%d)\n", dir, c.TargetZoneID, c.Exit.X, c.Exit.Y)
		}
	}
}

// setupOTelEnv points the OTLP exporter at Honeycomb when an API key is set.
func setupOTelEnv() {
	apiKey := os.Getenv("HONEYCOMB_REALMFORGE_API_KEY")
	if apiKey == "" {
		return
	}
	dataset := os.Getenv("HONEYCOMB_REALMFORGE_DATASET")
	if dataset == "" {
		dataset = "realmforge"
	}
	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
	os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
		fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
}
