package bot

import (
	"strings"

	"github.com/spf13/viper"
)

// Defaults for the free-text acceptance heuristics. The source thresholds
// were tuned empirically, so they stay configurable (validation.* keys)
// rather than hard-coded.
const (
	defaultMinChars = 25
	defaultMinWords = 4
)

var defaultGreetings = []string{
	"hello", "hi", "hey", "hello there", "good morning", "good evening",
	"mingalabar", "thanks", "thank you", "ok", "okay", "test", "start",
}

// Validator applies the acceptance check for free-form detail blocks. It
// favors false acceptance over false rejection: during a disaster a clumsy
// report is better than a rejected one.
type Validator struct {
	minChars  int
	minWords  int
	greetings []string
}

// NewValidator reads thresholds from configuration, falling back to the
// defaults above.
func NewValidator() *Validator {
	v := &Validator{
		minChars:  viper.GetInt("validation.min_chars"),
		minWords:  viper.GetInt("validation.min_words"),
		greetings: viper.GetStringSlice("validation.greetings"),
	}
	if v.minChars <= 0 {
		v.minChars = defaultMinChars
	}
	if v.minWords <= 0 {
		v.minWords = defaultMinWords
	}
	if len(v.greetings) == 0 {
		v.greetings = defaultGreetings
	}
	return v
}

// AcceptDetails reports whether text is substantial enough to be a details
// block. Anything under the character floor is rejected outright; past that,
// multi-line or long messages are always accepted, and only short
// greeting-like messages are turned away.
func (v *Validator) AcceptDetails(text string) bool {
	text = strings.TrimSpace(text)
	if len(text) < v.minChars {
		return false
	}
	if strings.Count(text, "\n") >= 2 || len(text) > 100 {
		return true
	}
	if v.isGreeting(text) {
		return false
	}
	if len(strings.Fields(text)) >= v.minWords {
		return true
	}
	return containsDigit(text)
}

// AcceptFieldAnswer is the lighter check for single guided-path answers,
// which are legitimately short ("45", "male").
func (v *Validator) AcceptFieldAnswer(text string) bool {
	text = strings.TrimSpace(text)
	return text != "" && !v.isGreeting(text)
}

func (v *Validator) isGreeting(text string) bool {
	lowered := strings.ToLower(strings.TrimRight(text, "!.?, "))
	for _, g := range v.greetings {
		if lowered == g {
			return true
		}
	}
	return false
}

func containsDigit(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}
