package seed

import (
	"context"
	"fmt"
	"sync"

	"slay-store/internal/model"

	"github.com/rs/zerolog"
)

// ProductCounter reports how many products the store holds.
type ProductCounter interface {
	Count(ctx context.Context) (int, error)
}

// ProductCreator validates and persists a product.
type ProductCreator interface {
	Create(ctx context.Context, p *model.Product) (*model.Product, error)
}

// BannerCreator validates and persists a banner.
type BannerCreator interface {
	Create(ctx context.Context, b *model.Banner) (*model.Banner, error)
}

// Result summarises a seeding run.
type Result struct {
	Skipped  bool
	Products int
	Banners  int
}

// Seeder fills an empty catalog from one or more catalog files.
type Seeder struct {
	loader   Loader
	counter  ProductCounter
	products ProductCreator
	banners  BannerCreator
	logger   zerolog.Logger
}

// NewSeeder creates a new catalog seeder.
func NewSeeder(loader Loader, counter ProductCounter, products ProductCreator, banners BannerCreator, logger zerolog.Logger) *Seeder {
	return &Seeder{
		loader:   loader,
		counter:  counter,
		products: products,
		banners:  banners,
		logger:   logger.With().Str("component", "catalog-seeder").Logger(),
	}
}

// Run loads every file and inserts their contents, in file order, when the
// catalog holds no products. Any load failure aborts before writing.
func (s *Seeder) Run(ctx context.Context, files []string) (Result, error) {
	if len(files) == 0 {
		return Result{Skipped: true}, nil
	}

	count, err := s.counter.Count(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		s.logger.Info().Int("products", count).Msg("catalog not empty, skipping seed")
		return Result{Skipped: true}, nil
	}

	catalogs, err := s.loadAll(ctx, files)
	if err != nil {
		return Result{}, err
	}

	var res Result
	for i, c := range catalogs {
		for j := range c.Products {
			if _, err := s.products.Create(ctx, &c.Products[j]); err != nil {
				return res, fmt.Errorf("failed to seed product %q from %s: %w", c.Products[j].Name, files[i], err)
			}
			res.Products++
		}
		for j := range c.Banners {
			if _, err := s.banners.Create(ctx, &c.Banners[j]); err != nil {
				return res, fmt.Errorf("failed to seed banner %q from %s: %w", c.Banners[j].Title, files[i], err)
			}
			res.Banners++
		}
	}

	s.logger.Info().
		Int("products", res.Products).
		Int("banners", res.Banners).
		Msg("catalog seeded")

	return res, nil
}

// loadAll loads files concurrently and returns the catalogs in input order.
func (s *Seeder) loadAll(ctx context.Context, files []string) ([]*Catalog, error) {
	type loadResult struct {
		index   int
		catalog *Catalog
		err     error
	}

	resultChan := make(chan loadResult, len(files))
	var wg sync.WaitGroup

	for i, name := range files {
		wg.Add(1)
		go func(index int, name string) {
			defer wg.Done()
			c, err := s.loader.Load(ctx, name)
			resultChan <- loadResult{index: index, catalog: c, err: err}
		}(i, name)
	}

	wg.Wait()
	close(resultChan)

	catalogs := make([]*Catalog, len(files))
	for r := range resultChan {
		if r.err != nil {
			s.logger.Error().Err(r.err).Str("file", files[r.index]).Msg("failed to load catalog file")
			return nil, fmt.Errorf("failed to load catalog file %s: %w", files[r.index], r.err)
		}
		catalogs[r.index] = r.catalog
	}
	return catalogs, nil
}
