// Command seed loads catalog files into an empty store.
//
// Usage:
//
//	seed catalog.json [more.json.gz ...]
//
// With no arguments the files listed in SEED_FILES are used.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"slay-store/internal/config"
	"slay-store/internal/database"
	"slay-store/internal/repository"
	"slay-store/internal/seed"
	"slay-store/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger := config.NewLogger(cfg.Logger)

	files := flag.Args()
	if len(files) == 0 {
		files = cfg.Seed.Files
	}
	if len(files) == 0 {
		return fmt.Errorf("no catalog files given and SEED_FILES is empty")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := database.Migrate(cfg.Database.ConnectionString(), logger); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	pool, err := database.NewPool(ctx, cfg.Database, database.NewConnState(), logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	productRepo := repository.NewProductRepository(pool, logger)
	seeder := seed.NewSeeder(
		seed.NewLoader(ctx, cfg.S3, logger),
		productRepo,
		service.NewProductService(productRepo, logger),
		service.NewBannerService(repository.NewBannerRepository(pool, logger), logger),
		logger,
	)

	res, err := seeder.Run(ctx, files)
	if err != nil {
		return err
	}
	if res.Skipped {
		fmt.Println("catalog already populated, nothing seeded")
		return nil
	}
	fmt.Printf("seeded %d products and %d banners\n", res.Products, res.Banners)
	return nil
}
