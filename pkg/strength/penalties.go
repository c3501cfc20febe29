package strength

import (
	"fmt"
	"regexp"
	"strings"
)

// Penalty weights per detector, in bits
const (
	penaltyWeakWord    = 20
	penaltyKeyboard    = 10
	penaltyConcat      = 30
	penaltyWordDigits  = 20
	penaltyRepeatBlock = 15
	penaltyRepeatRun   = 10
	penaltyYearCombo   = 25
	penaltySequence    = 10
)

var yearPattern = regexp.MustCompile(`(19|20)\d{2}`)

type compositeKind int

const (
	compositeConcat compositeKind = iota
	compositeWordDigitsLetters
	compositeWordTrailingDigits
)

// compositeMatch identifies which composite sub-rule fired and on
// which lexicon word(s)
type compositeMatch struct {
	kind   compositeKind
	first  string
	second string
}

// penalize runs every weakness detector in fixed order and returns the
// deductions that fired. Each detector fires at most once; the block
// repetition checks may both fire, and the run detector scales with
// the number of runs. Word matching is case-insensitive while the
// repetition checks operate on the raw string.
func (a *DefaultAnalyzer) penalize(password string, classes CharacterClasses) []Penalty {
	var penalties []Penalty
	lower := strings.ToLower(password)
	runes := []rune(password)

	if word, ok := a.findWeakWord(lower); ok {
		penalties = append(penalties, Penalty{
			Reason: fmt.Sprintf("contains common word %q", word),
			Points: penaltyWeakWord,
		})
	}

	if pattern, ok := a.findKeyboardPattern(lower); ok {
		penalties = append(penalties, Penalty{
			Reason: fmt.Sprintf("contains keyboard pattern %q", pattern),
			Points: penaltyKeyboard,
		})
	}

	if match, ok := a.findCompositePattern(lower); ok {
		switch match.kind {
		case compositeConcat:
			penalties = append(penalties, Penalty{
				Reason: fmt.Sprintf("concatenates common words %q and %q", match.first, match.second),
				Points: penaltyConcat,
			})
		case compositeWordDigitsLetters:
			penalties = append(penalties, Penalty{
				Reason: fmt.Sprintf("combines %q with digits and letters", match.first),
				Points: penaltyWordDigits,
			})
		case compositeWordTrailingDigits:
			penalties = append(penalties, Penalty{
				Reason: fmt.Sprintf("ends with %q plus trailing digits", match.first),
				Points: penaltyWordDigits,
			})
		}
	}

	if len(runes) >= 4 {
		if hasRepeatedBlock(runes, 2) {
			penalties = append(penalties, Penalty{
				Reason: "contains a repeated 2-character block",
				Points: penaltyRepeatBlock,
			})
		}
		if hasRepeatedBlock(runes, 3) {
			penalties = append(penalties, Penalty{
				Reason: "contains a repeated 3-character block",
				Points: penaltyRepeatBlock,
			})
		}
	}

	if runs := countRepeatRuns(runes); runs > 0 {
		penalties = append(penalties, Penalty{
			Reason: fmt.Sprintf("contains %d runs of repeated characters", runs),
			Points: runs * penaltyRepeatRun,
		})
	}

	if word, ok := a.findYearCombo(lower, classes.Symbol); ok {
		penalties = append(penalties, Penalty{
			Reason: fmt.Sprintf("combines %q with a year and symbol", word),
			Points: penaltyYearCombo,
		})
	}

	if seq, ok := a.findSimpleSequence(lower); ok {
		penalties = append(penalties, Penalty{
			Reason: fmt.Sprintf("contains simple sequence %q", seq),
			Points: penaltySequence,
		})
	}

	return penalties
}

func (a *DefaultAnalyzer) findWeakWord(lower string) (string, bool) {
	for _, word := range a.config.WeakWords {
		if strings.Contains(lower, word) {
			return word, true
		}
	}
	return "", false
}

func (a *DefaultAnalyzer) findKeyboardPattern(lower string) (string, bool) {
	for _, pattern := range a.config.KeyboardPatterns {
		if strings.Contains(lower, pattern) {
			return pattern, true
		}
	}
	return "", false
}

// findCompositePattern looks for predictable word compositions. For
// each lexicon word it checks direct concatenation with every other
// word, then word+digits+letters, then word+3-4 trailing digits. The
// first structural match wins so a phrase is never penalized twice.
func (a *DefaultAnalyzer) findCompositePattern(lower string) (compositeMatch, bool) {
	for _, first := range a.config.CompositeWords {
		for _, second := range a.config.CompositeWords {
			if first == second {
				continue
			}
			if strings.Contains(lower, first+second) {
				return compositeMatch{kind: compositeConcat, first: first, second: second}, true
			}
		}
		if wordThenDigitsThenLetters(lower, first) {
			return compositeMatch{kind: compositeWordDigitsLetters, first: first}, true
		}
		if wordThenTrailingDigits(lower, first) {
			return compositeMatch{kind: compositeWordTrailingDigits, first: first}, true
		}
	}
	return compositeMatch{}, false
}

// wordThenDigitsThenLetters reports whether any occurrence of word is
// immediately followed by one or more digits and then a lowercase
// letter, e.g. "shadow123abc".
func wordThenDigitsThenLetters(lower, word string) bool {
	for from := 0; ; {
		i := strings.Index(lower[from:], word)
		if i < 0 {
			return false
		}
		if digitsThenLetter(lower[from+i+len(word):]) {
			return true
		}
		from += i + 1
	}
}

// wordThenTrailingDigits reports whether any occurrence of word is
// followed by exactly three or four digits running to the end of the
// string, e.g. "dragon1995".
func wordThenTrailingDigits(lower, word string) bool {
	for from := 0; ; {
		i := strings.Index(lower[from:], word)
		if i < 0 {
			return false
		}
		rest := lower[from+i+len(word):]
		if n := len(rest); (n == 3 || n == 4) && allDigits(rest) {
			return true
		}
		from += i + 1
	}
}

func digitsThenLetter(s string) bool {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return false
	}
	return i < len(s) && s[i] >= 'a' && s[i] <= 'z'
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}

// hasRepeatedBlock reports whether any block of the given rune size is
// immediately repeated at least once, e.g. "abab" for size 2 or
// "abcabc" for size 3. Backreference scans are done by hand because
// RE2 does not support them.
func hasRepeatedBlock(runes []rune, size int) bool {
	for i := 0; i+2*size <= len(runes); i++ {
		match := true
		for j := 0; j < size; j++ {
			if runes[i+j] != runes[i+size+j] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// countRepeatRuns counts maximal runs of three or more identical
// consecutive runes; each run is penalized separately.
func countRepeatRuns(runes []rune) int {
	count := 0
	for i := 0; i < len(runes); {
		j := i
		for j < len(runes) && runes[j] == runes[i] {
			j++
		}
		if j-i >= 3 {
			count++
		}
		i = j
	}
	return count
}

// findYearCombo reports the first weak word positioned before or after
// a 19xx/20xx year token, provided the password also carries a symbol.
// Any gap between word and year is allowed.
func (a *DefaultAnalyzer) findYearCombo(lower string, hasSymbol bool) (string, bool) {
	if !hasSymbol {
		return "", false
	}
	locs := yearPattern.FindAllStringIndex(lower, -1)
	if len(locs) == 0 {
		return "", false
	}
	firstYearEnd := locs[0][1]
	lastYearStart := locs[len(locs)-1][0]
	for _, word := range a.config.WeakWords {
		first := strings.Index(lower, word)
		if first < 0 {
			continue
		}
		last := strings.LastIndex(lower, word)
		if first+len(word) <= lastYearStart || last >= firstYearEnd {
			return word, true
		}
	}
	return "", false
}

func (a *DefaultAnalyzer) findSimpleSequence(lower string) (string, bool) {
	for _, seq := range a.config.SimpleSequences {
		if strings.Contains(lower, seq) {
			return seq, true
		}
	}
	return "", false
}
