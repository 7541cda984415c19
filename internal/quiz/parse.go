package quiz

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	scoreSeparators = strings.NewReplacer("–", "-", "—", "-", "−", "-", ":", "-", "x", "-", "×", "-")
	scorePattern    = regexp.MustCompile(`(\d+)\s*-\s*(\d+)`)
)

// ParseScore reads a scoreline such as "2-3", "2:3", "2×3" or "2 x 3".
func ParseScore(s string) (Scoreline, bool) {
	m := scorePattern.FindStringSubmatch(scoreSeparators.Replace(s))
	if m == nil {
		return Scoreline{}, false
	}
	home, err := strconv.Atoi(m[1])
	if err != nil {
		return Scoreline{}, false
	}
	away, err := strconv.Atoi(m[2])
	if err != nil {
		return Scoreline{}, false
	}
	return Scoreline{Home: home, Away: away}, true
}

// ParseNumber reads a finite number, accepting a comma as decimal separator.
func ParseNumber(s string) (float64, bool) {
	s = strings.Replace(strings.TrimSpace(s), ",", ".", 1)
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(n, 0) || math.IsNaN(n) {
		return 0, false
	}
	return n, true
}

// FormatNumber renders n the shortest way that reads back to the same value.
func FormatNumber(n float64) string { return strconv.FormatFloat(n, 'f', -1, 64) }
