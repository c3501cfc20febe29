package strength

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Feedback message templates, appended in a fixed order regardless of
// severity
const (
	feedbackEmpty      = "Please enter a password to check its strength."
	feedbackLengthBad  = "❌ Length: Must be at least %d characters. Currently %d."
	feedbackLengthGood = "✅ Length: Good (%d chars)."
	feedbackClassBad   = "❌ Complexity: Include at least one %s."
	feedbackClassGood  = "✅ Complexity: Includes %s."
	feedbackConcat     = "❌ AI Heuristic: Detects concatenated common words (e.g., 'masterfirewall'). Highly predictable."
	feedbackWordDigits = "❌ AI Heuristic: Detects common word combined with short numbers/years (e.g., 'shadow1990')."
	feedbackBreach     = "❌ Breach Risk: Contains '%s' which is a common dictionary word or breached password."
	feedbackGuessable  = "⚠️ Warning: Contains easily guessable patterns."
	feedbackBlocks     = "❌ Repetition: Contains repeated blocks (e.g., 'abcabc')."
	feedbackRuns       = "⚠️ Repetition: Contains triple or more repetitive characters (e.g., 'aaa')."
	feedbackSequence   = "⚠️ Warning: Contains simple sequential patterns ('123', 'abc')."
)

// buildFeedback re-runs lightweight versions of the detectors to
// produce the ordered checklist. It is deliberately independent of the
// scoring pass; the generic guessable-pattern warning fires only when
// no word-based finding was reported but the rounded score still fell
// below the raw entropy.
func (a *DefaultAnalyzer) buildFeedback(password string, classes CharacterClasses, score int, raw float64) []string {
	var lines []string

	length := utf8.RuneCountInString(password)
	if length < a.config.MinLength {
		lines = append(lines, fmt.Sprintf(feedbackLengthBad, a.config.MinLength, length))
	} else {
		lines = append(lines, fmt.Sprintf(feedbackLengthGood, length))
	}

	classChecks := []struct {
		label  string
		passed bool
	}{
		{"Lowercase letters (a-z)", classes.Lower},
		{"Uppercase letters (A-Z)", classes.Upper},
		{"Digits (0-9)", classes.Digit},
		{"Symbols (!@#$)", classes.Symbol},
	}
	for _, check := range classChecks {
		if check.passed {
			lines = append(lines, fmt.Sprintf(feedbackClassGood, check.label))
		} else {
			lines = append(lines, fmt.Sprintf(feedbackClassBad, check.label))
		}
	}

	lower := strings.ToLower(password)
	wordBased := false

	if match, ok := a.findCompositePattern(lower); ok {
		wordBased = true
		if match.kind == compositeConcat {
			lines = append(lines, feedbackConcat)
		} else {
			lines = append(lines, feedbackWordDigits)
		}
	}

	if word, ok := a.findWeakWord(lower); ok {
		wordBased = true
		lines = append(lines, fmt.Sprintf(feedbackBreach, word))
	}

	if !wordBased && float64(score) < raw {
		lines = append(lines, feedbackGuessable)
	}

	runes := []rune(password)
	if hasRepeatedBlock(runes, 2) || hasRepeatedBlock(runes, 3) {
		lines = append(lines, feedbackBlocks)
	}
	if countRepeatRuns(runes) > 0 {
		lines = append(lines, feedbackRuns)
	}
	if _, ok := a.findSimpleSequence(lower); ok {
		lines = append(lines, feedbackSequence)
	}

	return lines
}
