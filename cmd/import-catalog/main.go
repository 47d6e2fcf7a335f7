// Command import-catalog performs the one-time batch import of the flat
// major catalog file into the relational catalog tables, replacing any
// previous content.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/baokaotong/baokao-backend/internal/config"
	"github.com/baokaotong/baokao-backend/internal/database"
	"github.com/baokaotong/baokao-backend/internal/importer"
	"github.com/baokaotong/baokao-backend/internal/logger"
	"github.com/baokaotong/baokao-backend/internal/repository"
)

func main() {
	var file string
	flag.StringVar(&file, "file", "", "Path to the catalog file (defaults to CATALOG_FILE)")
	flag.Parse()

	cfg := config.Load()
	if file == "" {
		file = cfg.CatalogFile
	}

	zlog := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, cfg, zlog)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer pool.Close()

	rec, err := importer.Import(ctx, repository.NewCatalogRepository(pool), file)
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	fmt.Printf("Imported %d categories, %d subjects, %d majors from %s\n",
		len(rec.Categories), len(rec.Subjects), len(rec.Majors), file)
}
