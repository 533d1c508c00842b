// Command recompute refreshes every prompt's valid_words_count hint by
// scanning the current dictionary through the rule matcher.
package main

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"wordrush/internal/config"
	"wordrush/internal/database"
	"wordrush/internal/repository"
	"wordrush/internal/validation"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Initialize(cfg.DatabaseType, cfg.DatabasePath, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer db.Close()

	start := time.Now()
	promptRepo := repository.NewPromptRepository(db)
	wordRepo := repository.NewWordRepository(db)
	matcher := validation.NewMatcher(cfg.DiacriticLetters)

	prompts, err := promptRepo.All()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load prompts")
	}
	words, err := wordRepo.AllWords()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load words")
	}

	for _, p := range prompts {
		count := 0
		for _, w := range words {
			if matcher.Matches(w, p.Rule) {
				count++
			}
		}
		if err := promptRepo.UpdateValidWordsCount(p.ID, count); err != nil {
			log.Fatal().Err(err).Int64("prompt_id", p.ID).Msg("failed to update prompt")
		}
		log.Info().Int64("prompt_id", p.ID).Int("matches", count).Msg("prompt updated")
	}

	log.Info().
		Int("prompts", len(prompts)).
		Dur("elapsed", time.Since(start)).
		Msg("recompute complete")
}
