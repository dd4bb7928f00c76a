package ui

import (
	"sort"
	"strings"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"

	"github.com/jmrivas/ondacast/internal/catalog"
)

// SearchState is the search input line of the Episodes view. Membership of
// the result set is a plain substring test (catalog.Filter); the fzf score
// only orders the matches and positions the highlights.
type SearchState struct {
	query     string
	cursorPos int
}

func NewSearchState() *SearchState {
	algo.Init("default")
	return &SearchState{}
}

func (s *SearchState) Query() string {
	return s.query
}

func (s *SearchState) Active() bool {
	return s.query != ""
}

func (s *SearchState) Clear() {
	s.query = ""
	s.cursorPos = 0
}

func (s *SearchState) InsertChar(ch rune) {
	runes := []rune(s.query)
	head := string(runes[:s.cursorPos])
	tail := string(runes[s.cursorPos:])
	s.query = head + string(ch) + tail
	s.cursorPos++
}

func (s *SearchState) DeleteChar() {
	if s.cursorPos == 0 {
		return
	}
	runes := []rune(s.query)
	s.query = string(runes[:s.cursorPos-1]) + string(runes[s.cursorPos:])
	s.cursorPos--
}

func (s *SearchState) MoveCursorLeft() {
	if s.cursorPos > 0 {
		s.cursorPos--
	}
}

func (s *SearchState) MoveCursorRight() {
	if s.cursorPos < len([]rune(s.query)) {
		s.cursorPos++
	}
}

func (s *SearchState) CursorPos() int {
	return s.cursorPos
}

// score returns the fzf match score of the query against text, -1 when fzf
// finds no match at all.
func (s *SearchState) score(text string) int {
	if s.query == "" {
		return 0
	}
	chars := util.ToChars([]byte(strings.ToLower(text)))
	pattern := []rune(strings.ToLower(s.query))
	slab := util.MakeSlab(16384, 1024)
	result, _ := algo.FuzzyMatchV2(false, false, true, &chars, pattern, false, slab)
	if result.Start < 0 {
		return -1
	}
	return result.Score
}

// HighlightPositions returns the rune positions of the query match within
// text, for highlighting a result row. Nil when there is no fzf match; the
// row may still be in the result set through its description.
func (s *SearchState) HighlightPositions(text string) []int {
	if s.query == "" {
		return nil
	}
	chars := util.ToChars([]byte(strings.ToLower(text)))
	pattern := []rune(strings.ToLower(s.query))
	slab := util.MakeSlab(16384, 1024)
	result, positions := algo.FuzzyMatchV2(false, false, true, &chars, pattern, true, slab)
	if result.Start < 0 || positions == nil {
		return nil
	}
	out := make([]int, len(*positions))
	copy(out, *positions)
	return out
}

// Rank orders episodes by descending fzf score, title matches weighing above
// description-only matches. The sort is stable so dataset order breaks ties.
func (s *SearchState) Rank(episodes []*catalog.Episode) {
	if s.query == "" {
		return
	}
	rank := func(ep *catalog.Episode) int {
		best := s.score(ep.Title)
		if d := s.score(ep.Description); d >= 0 && d-10 > best {
			best = d - 10
		}
		return best
	}
	sort.SliceStable(episodes, func(i, j int) bool {
		return rank(episodes[i]) > rank(episodes[j])
	})
}
