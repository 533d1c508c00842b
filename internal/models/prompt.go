package models

// RuleType identifies how a prompt matches words.
type RuleType string

const (
	RuleStartsWith        RuleType = "starts_with"
	RuleEndsWith          RuleType = "ends_with"
	RuleContains          RuleType = "contains"
	RuleContainsDouble    RuleType = "contains_double"
	RuleContainsDiacritic RuleType = "contains_diacritic"
)

// Rule is a prompt's matching rule. Value is empty for contains_diacritic.
type Rule struct {
	Type  RuleType `json:"type"`
	Value string   `json:"value,omitempty"`
}

// Prompt is a catalog entry players must satisfy with a word.
// ValidWordsCount is a hint maintained offline by cmd/recompute.
type Prompt struct {
	ID              int64
	Description     string
	Rule            Rule
	ValidWordsCount *int
}

// PromptSnapshot is a prompt frozen into a session at creation time.
// Catalog edits after that never affect sessions already in play.
type PromptSnapshot struct {
	PromptID        int64  `json:"prompt_id"`
	Description     string `json:"description"`
	Rule            Rule   `json:"rule"`
	ValidWordsCount *int   `json:"valid_words_count"`
}
