package strength

import (
	"fmt"
	"math"
)

// Time unit lengths in seconds for crack-time bucketing
const (
	secondsPerMinute  = 60
	secondsPerHour    = 3600
	secondsPerDay     = 86400
	secondsPerYear    = 31536000
	secondsPerCentury = 3153600000
)

// crackTime renders the estimated wall-clock time to exhaust 2^bits
// guesses at the configured adversary rate, bucketed into the coarsest
// readable unit.
func (a *DefaultAnalyzer) crackTime(bits int) string {
	if bits <= 0 {
		return "Instantly"
	}

	seconds := math.Pow(2, float64(bits)) / a.config.GuessesPerSecond

	if seconds < 0.001 {
		return "Instantly (< 1 ms)"
	} else if seconds < 1 {
		return fmt.Sprintf("%.2f milliseconds", seconds*1000)
	} else if seconds < secondsPerMinute {
		return fmt.Sprintf("%.2f seconds", seconds)
	} else if seconds < secondsPerHour {
		return fmt.Sprintf("%.2f minutes", seconds/secondsPerMinute)
	} else if seconds < secondsPerDay {
		return fmt.Sprintf("%.2f hours", seconds/secondsPerHour)
	} else if seconds < secondsPerYear {
		return fmt.Sprintf("%.2f days", seconds/secondsPerDay)
	} else if seconds < secondsPerCentury {
		return fmt.Sprintf("%.2f years", seconds/secondsPerYear)
	}
	return fmt.Sprintf("%.2f centuries", seconds/secondsPerCentury)
}
