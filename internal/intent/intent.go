package intent

import (
	"regexp"
	"strconv"
	"strings"
)

type Kind int

const (
	None Kind = iota
	Quit
	Start
	Move
)

// Intent is the classified meaning of a message. Cell is only meaningful
// for Move and is zero-based.
type Intent struct {
	Kind Kind
	Cell int
}

var (
	quitKeywords  = []string{"stop", "quit", "end game", "unsubscribe", "no more"}
	startKeywords = []string{"start", "new game", "play", "challenge", "begin", "let's play"}

	quitPattern  = compileKeywords(quitKeywords)
	startPattern = compileKeywords(startKeywords)

	// A standalone digit 1-9; digits embedded in longer numbers or words
	// must not count as a move.
	movePattern = regexp.MustCompile(`\b([1-9])\b`)
)

// compileKeywords builds one case-insensitive alternation with word
// boundaries, so "stop" matches but "stopwatch" does not. Multi-word
// phrases match as literal boundary-delimited phrases.
func compileKeywords(words []string) *regexp.Regexp {
	quoted := make([]string, 0, len(words))
	for _, word := range words {
		quoted = append(quoted, regexp.QuoteMeta(word))
	}

	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
}

// Classify maps a raw message to exactly one Intent. Priority is fixed:
// Quit beats Start beats Move; None is the catch-all.
func Classify(raw string) Intent {
	if quitPattern.MatchString(raw) {
		return Intent{Kind: Quit}
	}

	if startPattern.MatchString(raw) {
		return Intent{Kind: Start}
	}

	if match := movePattern.FindStringSubmatch(raw); match != nil {
		digit, _ := strconv.Atoi(match[1])
		return Intent{Kind: Move, Cell: digit - 1}
	}

	return Intent{}
}
