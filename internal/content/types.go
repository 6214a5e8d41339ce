package content

import (
	"errors"
	"fmt"
	"sort"
)

// ErrNotConfigured indicates a skill level with no usable word or
// sentence-template list. It is fatal: a session cannot run without content.
var ErrNotConfigured = errors.New("content not configured")

// Skill is one difficulty tier with its own word list.
type Skill struct {
	Level int      `json:"level"`
	Label string   `json:"label"`
	Words []string `json:"words"`
}

// TemplateSet holds the sentence templates for one skill level. Templates may
// contain a {word} placeholder which is filled from the word pool at draw time.
type TemplateSet struct {
	Level     int      `json:"level"`
	Sentences []string `json:"sentences"`
}

// Library is the loaded word/sentence configuration, keyed by skill level.
type Library struct {
	skills    map[int]*Skill
	templates map[int][]string
	minLevel  int
	maxLevel  int
}

// NewLibrary builds a library from skill and template definitions.
func NewLibrary(skills []Skill, templates []TemplateSet) (*Library, error) {
	if len(skills) == 0 {
		return nil, fmt.Errorf("%w: no skill levels defined", ErrNotConfigured)
	}

	lib := &Library{
		skills:    make(map[int]*Skill, len(skills)),
		templates: make(map[int][]string, len(templates)),
	}

	for i := range skills {
		s := skills[i]
		if s.Level <= 0 {
			return nil, fmt.Errorf("%w: skill level must be positive, got %d", ErrNotConfigured, s.Level)
		}
		if len(s.Words) == 0 {
			return nil, fmt.Errorf("%w: skill level %d has no words", ErrNotConfigured, s.Level)
		}
		if _, exists := lib.skills[s.Level]; exists {
			return nil, fmt.Errorf("%w: duplicate skill level %d", ErrNotConfigured, s.Level)
		}
		lib.skills[s.Level] = &s
		if s.Level > lib.maxLevel {
			lib.maxLevel = s.Level
		}
		if lib.minLevel == 0 || s.Level < lib.minLevel {
			lib.minLevel = s.Level
		}
	}

	for _, t := range templates {
		if len(t.Sentences) == 0 {
			continue
		}
		lib.templates[t.Level] = t.Sentences
	}

	return lib, nil
}

// Skill returns the skill for a level, or ErrNotConfigured if missing.
func (l *Library) Skill(level int) (*Skill, error) {
	s, ok := l.skills[level]
	if !ok {
		return nil, fmt.Errorf("%w: no word list for skill level %d", ErrNotConfigured, level)
	}
	return s, nil
}

// Templates returns the sentence templates for a level, or ErrNotConfigured
// if the level has none.
func (l *Library) Templates(level int) ([]string, error) {
	t, ok := l.templates[level]
	if !ok {
		return nil, fmt.Errorf("%w: no sentence templates for skill level %d", ErrNotConfigured, level)
	}
	return t, nil
}

// MinLevel returns the lowest configured skill level, where sessions start.
func (l *Library) MinLevel() int {
	return l.minLevel
}

// MaxLevel returns the highest configured skill level.
func (l *Library) MaxLevel() int {
	return l.maxLevel
}

// HasLevel reports whether a skill level is configured.
func (l *Library) HasLevel(level int) bool {
	_, ok := l.skills[level]
	return ok
}

// WordPool returns the words of every skill level up to and including upTo,
// in level order. Used to fill sentence-template placeholders.
func (l *Library) WordPool(upTo int) []string {
	levels := make([]int, 0, len(l.skills))
	for lvl := range l.skills {
		if lvl <= upTo {
			levels = append(levels, lvl)
		}
	}
	sort.Ints(levels)

	var pool []string
	for _, lvl := range levels {
		pool = append(pool, l.skills[lvl].Words...)
	}
	return pool
}
