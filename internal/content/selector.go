package content

import (
	"math/rand"
	"strings"
	"time"
)

// Selector draws practice items from a Library. Selection is a pure function
// of (level, history, random source); callers own updating the round history.
type Selector struct {
	lib *Library
	rng *rand.Rand
}

// NewSelector creates a selector over the given library. Pass a seeded rng
// for deterministic draws in tests; nil uses a time-seeded source.
func NewSelector(lib *Library, rng *rand.Rand) *Selector {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Selector{lib: lib, rng: rng}
}

// NextWord draws a uniformly random word from the level's list, excluding
// words already in the round history. When the history covers the full list
// the whole list becomes eligible again, so a next word always exists.
func (s *Selector) NextWord(level int, history map[string]bool) (string, error) {
	skill, err := s.lib.Skill(level)
	if err != nil {
		return "", err
	}

	remaining := make([]string, 0, len(skill.Words))
	for _, w := range skill.Words {
		if !history[w] {
			remaining = append(remaining, w)
		}
	}
	if len(remaining) == 0 {
		remaining = skill.Words
	}

	return remaining[s.rng.Intn(len(remaining))], nil
}

// NextSentence draws a uniformly random sentence template for the level and
// fills any {word} placeholder from the word pool of levels up to it.
// Templates may recur; no repeat avoidance.
func (s *Selector) NextSentence(level int) (string, error) {
	templates, err := s.lib.Templates(level)
	if err != nil {
		return "", err
	}

	sentence := templates[s.rng.Intn(len(templates))]
	if strings.Contains(sentence, "{word}") {
		pool := s.lib.WordPool(level)
		if len(pool) > 0 {
			sentence = strings.ReplaceAll(sentence, "{word}", pool[s.rng.Intn(len(pool))])
		}
	}
	return sentence, nil
}
