package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"uchef/internal/config"
	"uchef/internal/db"
	"uchef/internal/importer"
	ingredientrepo "uchef/internal/repository/ingredient"
	restaurantrepo "uchef/internal/repository/restaurant"
)

func main() {
	var (
		filePath     string
		restaurantID string
	)
	flag.StringVar(&filePath, "file", "", "Path to ingredient stock CSV export")
	flag.StringVar(&restaurantID, "restaurant", "", "Restaurant ID to import into")
	flag.Parse()

	if filePath == "" || restaurantID == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.FromEnv()
	ctx := context.Background()

	pool, err := db.Connect(ctx, cfg.DBConnString, cfg.DBMaxConns)
	if err != nil {
		log.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	if _, err := restaurantrepo.NewPostgres(pool).GetByID(ctx, restaurantID); err != nil {
		log.Fatalf("lookup restaurant %q: %v", restaurantID, err)
	}

	f, err := os.Open(filePath)
	if err != nil {
		log.Fatalf("open file: %v", err)
	}
	defer f.Close()

	imp := importer.NewCSVImporter(f, ingredientrepo.NewPostgres(pool), restaurantID)

	start := time.Now()
	count, err := imp.Run(ctx)
	if err != nil {
		log.Fatalf("import failed: %v", err)
	}

	fmt.Printf("Imported %d ingredients into restaurant %s in %s\n", count, restaurantID, time.Since(start).Truncate(time.Millisecond))
}
