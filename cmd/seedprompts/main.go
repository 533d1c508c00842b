// Command seedprompts loads the preset Latvian prompt catalog. Safe to run
// repeatedly; existing prompts are left untouched.
package main

import (
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"wordrush/internal/config"
	"wordrush/internal/database"
	"wordrush/internal/models"
	"wordrush/internal/repository"
)

type preset struct {
	description string
	rule        models.Rule
}

var presetPrompts = []preset{
	{"Vārdi, kas sākas ar 'a'", models.Rule{Type: models.RuleStartsWith, Value: "a"}},
	{"Vārdi, kas sākas ar 'ā'", models.Rule{Type: models.RuleStartsWith, Value: "ā"}},
	{"Vārdi, kas sākas ar 'e'", models.Rule{Type: models.RuleStartsWith, Value: "e"}},
	{"Vārdi, kas sākas ar 'ē'", models.Rule{Type: models.RuleStartsWith, Value: "ē"}},
	{"Vārdi, kas sākas ar 'i'", models.Rule{Type: models.RuleStartsWith, Value: "i"}},
	{"Vārdi, kas sākas ar 'ī'", models.Rule{Type: models.RuleStartsWith, Value: "ī"}},
	{"Vārdi, kas sākas ar 'u'", models.Rule{Type: models.RuleStartsWith, Value: "u"}},
	{"Vārdi, kas sākas ar 'ū'", models.Rule{Type: models.RuleStartsWith, Value: "ū"}},
	{"Vārdi, kas sākas ar 'š'", models.Rule{Type: models.RuleStartsWith, Value: "š"}},
	{"Vārdi, kas sākas ar 'ž'", models.Rule{Type: models.RuleStartsWith, Value: "ž"}},
	{"Vārdi, kas sākas ar 'č'", models.Rule{Type: models.RuleStartsWith, Value: "č"}},
	{"Vārdi, kas sākas ar 'ķ'", models.Rule{Type: models.RuleStartsWith, Value: "ķ"}},
	{"Vārdi, kas sākas ar 'ģ'", models.Rule{Type: models.RuleStartsWith, Value: "ģ"}},
	{"Vārdi, kas sākas ar 'ļ'", models.Rule{Type: models.RuleStartsWith, Value: "ļ"}},
	{"Vārdi, kas sākas ar 'ņ'", models.Rule{Type: models.RuleStartsWith, Value: "ņ"}},
	{"Vārdi, kas beidzas ar 's'", models.Rule{Type: models.RuleEndsWith, Value: "s"}},
	{"Vārdi, kas beidzas ar 'š'", models.Rule{Type: models.RuleEndsWith, Value: "š"}},
	{"Vārdi, kas beidzas ar 'a'", models.Rule{Type: models.RuleEndsWith, Value: "a"}},
	{"Vārdi, kas beidzas ar 'i'", models.Rule{Type: models.RuleEndsWith, Value: "i"}},
	{"Vārdi, kas satur 'ie'", models.Rule{Type: models.RuleContains, Value: "ie"}},
	{"Vārdi, kas satur 'au'", models.Rule{Type: models.RuleContains, Value: "au"}},
	{"Vārdi, kas satur 'ai'", models.Rule{Type: models.RuleContains, Value: "ai"}},
	{"Vārdi, kas satur 'ou'", models.Rule{Type: models.RuleContains, Value: "ou"}},
	{"Vārdi, kas satur 'šķ'", models.Rule{Type: models.RuleContains, Value: "šķ"}},
	{"Vārdi ar dubultu 'll'", models.Rule{Type: models.RuleContainsDouble, Value: "ll"}},
	{"Vārdi ar dubultu 'ss'", models.Rule{Type: models.RuleContainsDouble, Value: "ss"}},
	{"Vārdi ar dubultu 'nn'", models.Rule{Type: models.RuleContainsDouble, Value: "nn"}},
	{"Vārdi ar dubultu 'rr'", models.Rule{Type: models.RuleContainsDouble, Value: "rr"}},
	{"Vārdi ar diakritisku burtu (ā,č,ē,ģ,ī,ķ,ļ,ņ,š,ū,ž)", models.Rule{Type: models.RuleContainsDiacritic}},
}

func main() {
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

	promptRepo := repository.NewPromptRepository(db)
	created := 0
	for _, p := range presetPrompts {
		_, wasCreated, err := promptRepo.GetOrCreate(p.description, p.rule)
		if err != nil {
			log.Fatal().Err(err).Str("description", p.description).Msg("failed to seed prompt")
		}
		if wasCreated {
			created++
		}
	}

	log.Info().Int("created", created).Int("total", len(presetPrompts)).Msg("prompts seeded")
}
