// Command importwords bulk-loads a UTF-8 dictionary file, one word per line,
// into the words table. Lines are normalized before insert; blanks,
// multi-word entries and duplicates are skipped.
package main

import (
	"bufio"
	"flag"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"wordrush/internal/config"
	"wordrush/internal/database"
	"wordrush/internal/repository"
	"wordrush/internal/validation"
)

func main() {
	path := flag.String("path", "", "Path to UTF-8 words file (required)")
	batch := flag.Int("batch", 5000, "Batch size for bulk inserts")
	flag.Parse()

	if *path == "" {
		flag.Usage()
		os.Exit(1)
	}

	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Initialize(cfg.DatabaseType, cfg.DatabasePath, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer db.Close()

	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	file, err := os.Open(*path)
	if err != nil {
		log.Fatal().Err(err).Str("path", *path).Msg("failed to open words file")
	}
	defer file.Close()

	wordRepo := repository.NewWordRepository(db)
	seen := make(map[string]bool)
	var pending []string
	var inserted int64

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" {
			continue
		}
		// skip multi-word entries
		if strings.Contains(raw, " ") {
			continue
		}
		w := validation.Normalize(raw)
		if w == "" || seen[w] {
			continue
		}
		seen[w] = true
		pending = append(pending, w)

		if len(pending) >= *batch {
			n, err := wordRepo.BulkInsert(pending)
			if err != nil {
				log.Fatal().Err(err).Msg("bulk insert failed")
			}
			inserted += n
			log.Info().Int64("inserted", inserted).Msg("progress")
			pending = pending[:0]
		}
	}
	if err := scanner.Err(); err != nil {
		log.Fatal().Err(err).Msg("failed to read words file")
	}

	if len(pending) > 0 {
		n, err := wordRepo.BulkInsert(pending)
		if err != nil {
			log.Fatal().Err(err).Msg("bulk insert failed")
		}
		inserted += n
	}

	log.Info().Int64("inserted", inserted).Int("read", len(seen)).Msg("import complete")
}
