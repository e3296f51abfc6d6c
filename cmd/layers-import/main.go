package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/landscape-review/internal/config"
	"github.com/landscape-review/internal/domain"
	"github.com/landscape-review/internal/pkg/logger"
	"github.com/landscape-review/internal/repository/layerfs"
	"github.com/landscape-review/internal/repository/postgres"
)

var (
	layersDir string
	dryRun    bool
	timeout   time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "layers-import",
	Short: "Import landscape layers from a GeoJSON directory into PostgreSQL",
	Long: `Reads <dir>/<region>/<category>/*.geojson and upserts every layer
into the landscape_layers table used by LAYER_STORE=postgres.

Examples:
  # Import from GEOJSON_DIR
  layers-import

  # Import from an explicit directory
  layers-import --dir ./geojson

  # Show what would be imported
  layers-import --dry-run`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImport(cmd.Context())
	},
}

func init() {
	rootCmd.Flags().StringVar(&layersDir, "dir", "", "GeoJSON directory (default: GEOJSON_DIR)")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "list layers without writing to the database")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 10*time.Minute, "overall import timeout")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runImport(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.Log.Level, "layers-import")
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Sync()

	if layersDir == "" {
		layersDir = cfg.Layers.Dir
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	source := layerfs.NewStore(layersDir, log)
	inventory, err := source.Reload(ctx)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", layersDir, err)
	}

	refs := inventoryRefs(inventory)
	log.Info("Layers found", zap.String("dir", layersDir), zap.Int("count", len(refs)))

	if dryRun {
		for _, ref := range refs {
			fmt.Println(ref.String())
		}
		return nil
	}

	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	defer db.Close()

	target := postgres.NewLayerRepository(db, nil, log)

	imported, failed := 0, 0
	for _, ref := range refs {
		fc, err := source.LoadLayer(ctx, ref)
		if err != nil {
			log.Warn("Skipping unreadable layer", zap.String("layer", ref.String()), zap.Error(err))
			failed++
			continue
		}
		if err := target.UpsertLayer(ctx, ref, fc); err != nil {
			return err
		}
		imported++
	}

	log.Info("Import completed", zap.Int("imported", imported), zap.Int("failed", failed))
	return nil
}

// inventoryRefs - слои, существующие на диске, в детерминированном порядке
func inventoryRefs(inv domain.LayerInventory) []domain.LayerRef {
	var refs []domain.LayerRef
	for region, categories := range inv {
		for category, entries := range categories {
			for _, e := range entries {
				if !e.Exists {
					continue
				}
				refs = append(refs, domain.LayerRef{Region: region, Category: category, Name: e.Name, File: e.File})
			}
		}
	}
	sort.Slice(refs, func(i, j int) bool {
		return refs[i].String() < refs[j].String()
	})
	return refs
}
