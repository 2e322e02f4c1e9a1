// ABOUTME: Dataset loading shared by train and evaluate
// ABOUTME: Opens the tensor cache when enabled and builds the configured corpora
package commands

import (
	"context"
	"log"
	"path/filepath"

	"github.com/harperreed/spectra/internal/config"
	"github.com/harperreed/spectra/internal/tensorcache"
	"github.com/harperreed/spectra/pkg/dataset"
)

// buildDataset loads the configured corpora, going through the tensor cache when enabled
func buildDataset(ctx context.Context, cfg *config.Config, useCache bool) (*dataset.Dataset, error) {
	opts := dataset.Options{
		Shape:        cfg.Image,
		TestFraction: cfg.Training.TestFraction,
		Seed:         cfg.Training.Seed,
	}

	if useCache && cfg.Cache.Enabled {
		cache, err := tensorcache.Open(tensorcache.Options{Dir: filepath.Clean(cfg.Cache.Dir)})
		if err != nil {
			log.Printf("Warning: tensor cache unavailable, decoding every image: %v", err)
		} else {
			defer cache.Close()
			opts.Cache = cache
		}
	}

	builder, err := dataset.NewBuilder(opts)
	if err != nil {
		return nil, err
	}
	return builder.Build(ctx, cfg.DatasetCorpora())
}
