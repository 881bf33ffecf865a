package seed

import (
	"context"
	"fmt"
	"os"

	"slay-store/internal/config"

	"github.com/rs/zerolog"
)

// fileLoader implements Loader for catalog files on the local file system.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based catalog loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "catalog-loader").Logger(),
	}
}

func (l *fileLoader) Load(ctx context.Context, path string) (*Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.logger.Info().Str("file", path).Msg("loading catalog file")

	file, err := os.Open(path)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to open catalog file")
		return nil, fmt.Errorf("failed to open catalog file %s: %w", path, err)
	}
	defer file.Close()

	c, err := decodeCatalog(file, path)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to read catalog file")
		return nil, err
	}

	l.logger.Info().
		Str("file", path).
		Int("products", len(c.Products)).
		Int("banners", len(c.Banners)).
		Msg("catalog file loaded")

	return c, nil
}

// NewLoader builds the loader described by cfg: local files only, or S3
// first with a local fallback. An S3 setup failure degrades to local only.
func NewLoader(ctx context.Context, cfg config.S3Config, logger zerolog.Logger) Loader {
	fileLoader := NewFileLoader(logger)
	if !cfg.Enabled {
		logger.Info().Msg("using local file system for catalog files (S3 disabled)")
		return fileLoader
	}

	s3Loader, err := NewS3Loader(ctx, cfg.Bucket, cfg.Region, logger)
	if err != nil {
		logger.Warn().
			Err(err).
			Msg("failed to initialise S3 loader, falling back to local file system only")
		return fileLoader
	}
	return NewFallbackLoader(s3Loader, fileLoader, cfg.Prefix, true, logger)
}
