// Package nba defines canonical forms for NBA biographical fields.
package nba

import (
	"strconv"
	"strings"
)

// Canonical shooting hands.
const (
	HandLeft  = "Left"
	HandRight = "Right"
)

// MaxDraftRound is the number of rounds in the modern NBA draft. The
// draft has had two rounds since 1989, so any stored round above this
// is a data defect.
const MaxDraftRound = 2

// NormalizeShoots maps a free-form shooting hand string to one of the
// canonical hands. Matching is case-insensitive on substrings and
// "left" wins over "right" when both appear, so corrupted
// concatenations of the two always resolve the same way. Values
// matching neither hand come back trimmed but otherwise untouched. An
// empty string means the hand is unknown.
func NormalizeShoots(raw string) string {
	if raw == "" {
		return ""
	}
	text := strings.ToLower(strings.TrimSpace(raw))
	if strings.Contains(text, "left") {
		return HandLeft
	}
	if strings.Contains(text, "right") {
		return HandRight
	}
	return strings.TrimSpace(raw)
}

// NormalizeDraftRound parses a draft round string and caps the result
// at MaxDraftRound. ok is false when raw is empty or not an integer,
// which both mean no round is recorded.
func NormalizeDraftRound(raw string) (round int64, ok bool) {
	if raw == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, false
	}
	return min(n, MaxDraftRound), true
}
