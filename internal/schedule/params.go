package schedule

import "strings"

// Params are the generation knobs handed to the text-generation service.
type Params struct {
	Temperature   float64
	TopP          float64
	MaxTokens     int
	RepeatPenalty float64
	TopK          int
}

var strictKeywords = []string{"strict", "exact", "specific", "must"}

var creativeKeywords = []string{"flexible", "creative", "suggest", "ideas"}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// ParamsFor picks generation parameters for a complexity tier, then nudges
// the temperature down when the intent asks for precision or up when it
// asks for creative suggestions. Precision cues win when both appear.
func ParamsFor(complexity Complexity, intent string) Params {
	var p Params
	switch complexity {
	case ComplexityComplex:
		p = Params{Temperature: 0.8, TopP: 0.95, MaxTokens: 2500}
	case ComplexityModerate:
		p = Params{Temperature: 0.7, TopP: 0.9, MaxTokens: 2048}
	default:
		p = Params{Temperature: 0.5, TopP: 0.85, MaxTokens: 1500}
	}
	p.RepeatPenalty = 1.1
	p.TopK = 40

	lower := strings.ToLower(intent)
	if containsAny(lower, strictKeywords) {
		p.Temperature -= 0.1
	} else if containsAny(lower, creativeKeywords) {
		p.Temperature += 0.1
	}

	if p.Temperature < 0.3 {
		p.Temperature = 0.3
	}
	if p.Temperature > 0.9 {
		p.Temperature = 0.9
	}
	return p
}
