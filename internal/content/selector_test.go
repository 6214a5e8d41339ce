package content

import (
	"errors"
	"math/rand"
	"strings"
	"testing"
)

func testSelector(t *testing.T, seed int64) (*Selector, *Library) {
	t.Helper()
	lib, err := NewLibrary(
		[]Skill{
			{Level: 1, Label: "Starters", Words: []string{"cat", "dog", "sun", "hat", "red"}},
		},
		[]TemplateSet{
			{Level: 1, Sentences: []string{"The child likes {word}.", "Look, a {word}!"}},
		},
	)
	if err != nil {
		t.Fatalf("NewLibrary() error = %v", err)
	}
	return NewSelector(lib, rand.New(rand.NewSource(seed))), lib
}

func TestNextWordRoundRobinWithoutReplacement(t *testing.T) {
	sel, _ := testSelector(t, 42)

	// Drawing with a caller-maintained history returns every word exactly
	// once before any word can repeat.
	history := make(map[string]bool)
	for i := 0; i < 5; i++ {
		word, err := sel.NextWord(1, history)
		if err != nil {
			t.Fatalf("NextWord() error = %v", err)
		}
		if history[word] {
			t.Fatalf("word %q repeated with %d words still unseen", word, 5-len(history))
		}
		history[word] = true
	}

	if len(history) != 5 {
		t.Fatalf("drew %d distinct words, want 5", len(history))
	}
}

func TestNextWordNeverExhausts(t *testing.T) {
	sel, _ := testSelector(t, 7)

	// Even with a full history the selector keeps producing items.
	history := map[string]bool{"cat": true, "dog": true, "sun": true, "hat": true, "red": true}
	for i := 0; i < 20; i++ {
		word, err := sel.NextWord(1, history)
		if err != nil {
			t.Fatalf("NextWord() error = %v", err)
		}
		if word == "" {
			t.Fatal("NextWord() returned an empty word")
		}
	}
}

func TestNextWordUnknownLevel(t *testing.T) {
	sel, _ := testSelector(t, 1)

	_, err := sel.NextWord(9, nil)
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("NextWord(9) error = %v, want ErrNotConfigured", err)
	}
}

func TestNextSentenceFillsPlaceholder(t *testing.T) {
	sel, lib := testSelector(t, 3)

	words := make(map[string]bool)
	for _, w := range lib.WordPool(1) {
		words[w] = true
	}

	for i := 0; i < 10; i++ {
		sentence, err := sel.NextSentence(1)
		if err != nil {
			t.Fatalf("NextSentence() error = %v", err)
		}
		if strings.Contains(sentence, "{word}") {
			t.Errorf("placeholder left unfilled: %q", sentence)
		}

		var filled bool
		for w := range words {
			if strings.Contains(sentence, w) {
				filled = true
				break
			}
		}
		if !filled {
			t.Errorf("sentence %q contains no word from the pool", sentence)
		}
	}
}

func TestNextSentenceUnknownLevel(t *testing.T) {
	sel, _ := testSelector(t, 1)

	_, err := sel.NextSentence(9)
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("NextSentence(9) error = %v, want ErrNotConfigured", err)
	}
}

func TestSelectionIsDeterministicWithSeededSource(t *testing.T) {
	a, _ := testSelector(t, 99)
	b, _ := testSelector(t, 99)

	history := make(map[string]bool)
	for i := 0; i < 5; i++ {
		wa, err := a.NextWord(1, history)
		if err != nil {
			t.Fatal(err)
		}
		wb, err := b.NextWord(1, history)
		if err != nil {
			t.Fatal(err)
		}
		if wa != wb {
			t.Fatalf("same seed diverged: %q vs %q", wa, wb)
		}
		history[wa] = true
	}
}
