// Package scoring holds the pure point formulas for the game. Nothing here
// touches storage or time; callers pass the ordinal, word length and
// remaining milliseconds.
package scoring

// Points is the breakdown awarded for one accepted word.
type Points struct {
	IndexPoints  int `json:"index_points"`
	LengthPoints int `json:"length_points"`
	Total        int `json:"total"`
}

// LengthPoints awards 1 point for a single letter, 3 for two letters, and
// 3 more per letter beyond the second.
func LengthPoints(length int) int {
	switch {
	case length <= 0:
		return 0
	case length == 1:
		return 1
	case length == 2:
		return 3
	default:
		return 3 + 3*(length-2)
	}
}

// WordPoints scores a word accepted for the prompt at the given 1-based
// ordinal. Later prompts are worth more: the ordinal itself is the index
// component.
func WordPoints(ordinal, wordLength int) Points {
	lp := LengthPoints(wordLength)
	return Points{
		IndexPoints:  ordinal,
		LengthPoints: lp,
		Total:        ordinal + lp,
	}
}

// TimeBonus awards 5 points per full 100ms remaining when the final word is
// submitted. Granted exactly once, at session completion.
func TimeBonus(timeLeftMs int) int {
	if timeLeftMs <= 0 {
		return 0
	}
	return timeLeftMs / 100 * 5
}
