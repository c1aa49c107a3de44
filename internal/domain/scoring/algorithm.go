package scoring

import (
	"math"
	"strings"
)

// Calculate grades answers against key and returns a percentage in [0, 100]
// rounded to one decimal place. Answers for keys absent from key are ignored.
// An empty key scores 0.
func Calculate(answers map[string]string, key AnswerKey) float64 {
	if len(key) == 0 {
		return 0
	}

	var credit float64
	for questionKey, expected := range key {
		given, ok := answers[questionKey]
		if !ok {
			continue
		}
		if expected == ManualGradingRequired {
			if strings.TrimSpace(given) != "" {
				credit += FreeResponseCredit
			}
			continue
		}
		if given == expected {
			credit++
		}
	}

	return Normalize(credit / float64(len(key)) * 100)
}

// Normalize rounds a percentage to one decimal place, halves away from
// zero, and clamps it to [0, 100].
func Normalize(percentage float64) float64 {
	return clamp(round1(percentage))
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

func clamp(x float64) float64 {
	return math.Max(0, math.Min(100, x))
}
