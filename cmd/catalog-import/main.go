package main

import (
	"context"
	"flag"
	"os"

	"homely_backend/internal/listings/catalogfile"
	"homely_backend/internal/listings/domain"
	listingrepo "homely_backend/internal/listings/repository"
	"homely_backend/platform/config"
	"homely_backend/platform/db"
	"homely_backend/platform/logger"
)

func main() {
	file := flag.String("file", "", "YAML catalog to import (defaults to the embedded launch catalog)")
	dryRun := flag.Bool("dry-run", false, "validate and report without writing")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting catalog import", "file", *file, "dryRun", *dryRun)

	listings, err := readCatalog(*file)
	if err != nil {
		log.Error("failed to read catalog", "error", err)
		os.Exit(1)
	}
	for _, w := range catalogfile.PriceWarnings(listings) {
		log.Warn("ambiguous listing price", "listingId", w.ListingID, "price", w.Price, "lakhs", w.Reading.Lakhs, "digitRuns", w.Reading.DigitRuns)
	}
	if *dryRun {
		log.Info("catalog valid", "listings", len(listings))
		return
	}

	ctx := context.Background()
	if err := db.RunMigrations(ctx, cfg); err != nil {
		log.Error("failed to run database migrations", "error", err)
		os.Exit(1)
	}
	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	repo := listingrepo.New(pool)
	imported := 0
	for _, l := range listings {
		if err := repo.Upsert(ctx, l); err != nil {
			log.Error("failed to upsert listing", "listingId", l.ID, "error", err)
			continue
		}
		imported++
	}
	log.Info("catalog import complete", "imported", imported, "failed", len(listings)-imported)
}

func readCatalog(path string) ([]domain.Listing, error) {
	if path == "" {
		return catalogfile.Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return catalogfile.Parse(f)
}
