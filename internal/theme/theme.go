package theme

import (
	"math/rand"
	"strings"
)

// MaxReplyLen is the platform's hard cap on one message, in runes.
const MaxReplyLen = 280

// Reply line categories.
const (
	CategoryStart    = "start"
	CategoryMoveOK   = "move_ok"
	CategoryInvalid  = "invalid"
	CategoryHumanWin = "human_win"
	CategoryBotWin   = "bot_win"
	CategoryDraw     = "draw"
	CategoryQuit     = "quit"
)

// Catalog maps each outcome category to its rotation of themed lines.
// Every category holds at least one line.
type Catalog struct {
	lines map[string][]string
}

// Default returns the stock 9D-flavoured catalog.
func Default() *Catalog {
	return &Catalog{lines: map[string][]string{
		CategoryStart: {
			"🎮 Welcome to 9D Tic Tac Toe! You play as ❌, I play as ⭕\nReply with 1–9 to make your move. ✨",
			"⚡ A new challenger enters the dimensional grid!\nYou = ❌, Bot = ⭕\nChoose 1–9 to begin! 🎯",
			"🌌 Welcome to the ultimate strategy challenge!\nPlace your mark (1–9) and let's see how deep your tactical thinking goes. 🧠",
		},
		CategoryMoveOK: {
			"🎯 Brilliant tactical positioning! The board shifts in your favor...",
			"✨ Nice move! I can see you're thinking dimensionally.",
			"🧠 Strategic! Your move has been registered. Now witness my counter-strategy...",
		},
		CategoryInvalid: {
			"⚠️ That square is already occupied! Choose an empty cell (1–9).",
			"🤔 Oops! That space is taken. Try another position 1–9.",
			"💡 Strategy tip: Pick an available square marked with ⬜ (1–9).",
		},
		CategoryHumanWin: {
			"🎉 VICTORY! You've mastered the dimensional grid!\nWant to go again? 🏆",
			"👑 Incredible! You've conquered the 9D challenge!\nReady for another round? ✨",
		},
		CategoryBotWin: {
			"🤖 I win this round! But your strategy was solid.\nWant to try again? 💪",
			"✨ Victory is mine this time! But you're learning fast.\nReady for a rematch? 🎮",
			"🎯 Game over! That was a great match.\nPlay again? 🔄",
		},
		CategoryDraw: {
			"🤝 A perfect stalemate! Our strategies were evenly matched.\nAnother round? ⚖️",
			"⚡ Draw! Both players played brilliantly.\nAgain? 🌌",
		},
		CategoryQuit: {
			"👋 Thanks for playing 9D Tic Tac Toe!\nCome back anytime for another strategic challenge. 🎮",
		},
	}}
}

// Pick selects one line of the category uniformly at random. Unknown
// categories return the empty string.
func (that *Catalog) Pick(rng *rand.Rand, category string) string {
	lines := that.lines[category]
	if len(lines) == 0 {
		return ""
	}
	return lines[rng.Intn(len(lines))]
}

// Compose builds the full reply: mention prefix, themed body, rendered
// board, optional trailing prompt — capped at MaxReplyLen runes. The
// mention prefix is never cut; overflow is trimmed from the end.
func Compose(author, body, board, prompt string) string {
	var b strings.Builder
	b.WriteString("@")
	b.WriteString(author)
	b.WriteString(" ")
	b.WriteString(body)
	if board != "" {
		b.WriteString("\n\n")
		b.WriteString(board)
	}
	if prompt != "" {
		b.WriteString("\n")
		b.WriteString(prompt)
	}

	return Truncate(b.String(), MaxReplyLen)
}

// Truncate cuts text to at most limit runes, from the end.
func Truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
