package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_Quit(t *testing.T) {
	t.Run("Matches quit keywords on word boundaries", func(t *testing.T) {
		for _, text := range []string{"stop", "please STOP now", "I quit", "end game", "no more for me", "unsubscribe"} {
			assert.Equal(t, Quit, Classify(text).Kind, "text: %q", text)
		}
	})

	t.Run("Ignores quit keywords inside longer words", func(t *testing.T) {
		// Given: texts where the keyword is only a substring
		for _, text := range []string{"my stopwatch broke", "mosquito season"} {
			assert.Equal(t, None, Classify(text).Kind, "text: %q", text)
		}
	})
}

func TestClassify_Start(t *testing.T) {
	t.Run("Matches start keywords", func(t *testing.T) {
		for _, text := range []string{"start", "let's play", "new game please", "I challenge you", "begin!"} {
			assert.Equal(t, Start, Classify(text).Kind, "text: %q", text)
		}
	})

	t.Run("Is case-insensitive", func(t *testing.T) {
		assert.Equal(t, Start, Classify("START").Kind)
	})

	t.Run("Ignores start keywords inside longer words", func(t *testing.T) {
		assert.Equal(t, None, Classify("restarting my router").Kind)
		assert.Equal(t, None, Classify("nice cosplay").Kind)
	})
}

func TestClassify_Move(t *testing.T) {
	t.Run("Extracts the first standalone digit", func(t *testing.T) {
		cases := map[string]int{
			"I choose 5": 4,
			"@bot 1":     0,
			"9 please":   8,
			"move 7":     6,
		}

		for text, cell := range cases {
			in := Classify(text)
			assert.Equal(t, Move, in.Kind, "text: %q", text)
			assert.Equal(t, cell, in.Cell, "text: %q", text)
		}
	})

	t.Run("Ignores digits embedded in larger numbers", func(t *testing.T) {
		assert.Equal(t, None, Classify("call me at 555").Kind)
		assert.Equal(t, None, Classify("version 42 is out").Kind)
	})

	t.Run("Ignores zero", func(t *testing.T) {
		assert.Equal(t, None, Classify("0").Kind)
	})

	t.Run("No digit means no move", func(t *testing.T) {
		assert.Equal(t, None, Classify("no numbers").Kind)
	})
}

func TestClassify_Priority(t *testing.T) {
	t.Run("Quit beats start", func(t *testing.T) {
		// Given: a message carrying both a quit and a start keyword
		in := Classify("stop, then start again")

		// Then: quit wins by fixed priority, regardless of position
		assert.Equal(t, Quit, in.Kind)
	})

	t.Run("Start beats move", func(t *testing.T) {
		in := Classify("start with 5")

		assert.Equal(t, Start, in.Kind)
	})

	t.Run("Quit beats move", func(t *testing.T) {
		assert.Equal(t, Quit, Classify("4 more? no more").Kind)
	})
}
