package engine

import (
	"log/slog"
	"math/rand"

	"github.com/ninedttt/gamemaker-bot/internal/entity"
	"github.com/ninedttt/gamemaker-bot/internal/intent"
	"github.com/ninedttt/gamemaker-bot/internal/theme"
)

const (
	promptYourTurn  = "Your turn! Reply with 1–9."
	promptPlayAgain = "Reply 'start' for a new game!"
	promptRematch   = "Ready for another strategic challenge? Say 'start'!"
	promptNeedDigit = "Please reply with a number 1–9 to make your move."
	lineInProgress  = "A game is already in progress in this thread! Finish this one first or start a new thread."
	lineGameOver    = "This game is already over."
)

// Outcome is the engine's verdict on one mention. An empty Reply means a
// true no-op: nothing is posted and nothing changed. Mutated tells the
// orchestrator the snapshot needs persisting.
type Outcome struct {
	Reply   string
	Mutated bool
}

// Engine is the per-conversation session state machine. It owns no state
// itself; it mutates the snapshot handed to it and never touches storage.
type Engine struct {
	logger *slog.Logger
	themes *theme.Catalog
	rng    *rand.Rand
}

// New builds an engine. The rand source drives both bot cell selection and
// themed line rotation; tests inject a fixed seed.
func New(logger *slog.Logger, themes *theme.Catalog, rng *rand.Rand) *Engine {
	return &Engine{
		logger: logger.With("component", "engine"),
		themes: themes,
		rng:    rng,
	}
}

// Handle applies one classified mention to the snapshot and composes the
// reply for it.
func (that *Engine) Handle(snapshot *entity.Snapshot, mention *entity.Mention, in intent.Intent) Outcome {
	switch in.Kind {
	case intent.Quit:
		return that.handleQuit(snapshot, mention)
	case intent.Start:
		return that.handleStart(snapshot, mention)
	case intent.Move:
		return that.handleMove(snapshot, mention, in.Cell)
	default:
		return that.handleChatter(snapshot, mention)
	}
}

// handleQuit removes the conversation's session, whatever its status, and
// says goodbye. With no session it is still a farewell, just not a mutation.
func (that *Engine) handleQuit(snapshot *entity.Snapshot, mention *entity.Mention) Outcome {
	_, exists := snapshot.Sessions[mention.ConversationID]
	if exists {
		delete(snapshot.Sessions, mention.ConversationID)
	}

	reply := theme.Compose(mention.AuthorName, that.themes.Pick(that.rng, theme.CategoryQuit), "", "")

	return Outcome{Reply: reply, Mutated: exists}
}

func (that *Engine) handleStart(snapshot *entity.Snapshot, mention *entity.Mention) Outcome {
	if session, exists := snapshot.Sessions[mention.ConversationID]; exists && session.IsActive() {
		return Outcome{Reply: theme.Compose(mention.AuthorName, lineInProgress, "", "")}
	}

	// No session, or the previous game ended: start fresh.
	session := entity.NewGameSession()
	session.LastMessageID = mention.ID
	snapshot.Sessions[mention.ConversationID] = session

	that.logger.Info("new game started", "conversation", mention.ConversationID)

	reply := theme.Compose(
		mention.AuthorName,
		that.themes.Pick(that.rng, theme.CategoryStart),
		entity.RenderBoard(session.Board),
		"",
	)

	return Outcome{Reply: reply, Mutated: true}
}

func (that *Engine) handleMove(snapshot *entity.Snapshot, mention *entity.Mention, cell int) Outcome {
	session, exists := snapshot.Sessions[mention.ConversationID]
	if !exists {
		// A digit with no game behind it is chit-chat.
		return Outcome{}
	}

	if session.IsEnded() {
		reply := theme.Compose(mention.AuthorName, lineGameOver, entity.RenderBoard(session.Board), promptPlayAgain)
		return Outcome{Reply: reply}
	}

	if err := session.ApplyMove(cell, entity.PlayerMark); err != nil {
		reply := theme.Compose(
			mention.AuthorName,
			that.themes.Pick(that.rng, theme.CategoryInvalid),
			entity.RenderBoard(session.Board),
			"",
		)
		return Outcome{Reply: reply}
	}

	session.LastMessageID = mention.ID

	if entity.CheckWinner(session.Board, entity.PlayerMark) {
		session.Status = entity.StatusEnded
		reply := theme.Compose(
			mention.AuthorName,
			that.themes.Pick(that.rng, theme.CategoryHumanWin),
			entity.RenderBoard(session.Board),
			promptPlayAgain,
		)
		return Outcome{Reply: reply, Mutated: true}
	}

	if entity.IsFull(session.Board) {
		session.Status = entity.StatusEnded
		reply := theme.Compose(
			mention.AuthorName,
			that.themes.Pick(that.rng, theme.CategoryDraw),
			entity.RenderBoard(session.Board),
			promptRematch,
		)
		return Outcome{Reply: reply, Mutated: true}
	}

	return that.makeBotMove(session, mention)
}

// makeBotMove places the bot's mark on a uniformly random empty cell and
// composes the combined reply for the turn. No look-ahead, by contract.
func (that *Engine) makeBotMove(session *entity.GameSession, mention *entity.Mention) Outcome {
	cells := session.EmptyCells()
	chosen := cells[that.rng.Intn(len(cells))]
	session.Board[chosen] = entity.BotMark

	board := entity.RenderBoard(session.Board)

	switch {
	case entity.CheckWinner(session.Board, entity.BotMark):
		session.Status = entity.StatusEnded
		return Outcome{
			Reply:   theme.Compose(mention.AuthorName, that.themes.Pick(that.rng, theme.CategoryBotWin), board, promptPlayAgain),
			Mutated: true,
		}
	case entity.IsFull(session.Board):
		session.Status = entity.StatusEnded
		return Outcome{
			Reply:   theme.Compose(mention.AuthorName, that.themes.Pick(that.rng, theme.CategoryDraw), board, ""),
			Mutated: true,
		}
	default:
		return Outcome{
			Reply:   theme.Compose(mention.AuthorName, that.themes.Pick(that.rng, theme.CategoryMoveOK), board, promptYourTurn),
			Mutated: true,
		}
	}
}

// handleChatter covers messages with no recognizable intent. Mid-game we
// nudge for a digit; otherwise the message is ignored.
func (that *Engine) handleChatter(snapshot *entity.Snapshot, mention *entity.Mention) Outcome {
	session, exists := snapshot.Sessions[mention.ConversationID]
	if !exists || !session.IsActive() {
		return Outcome{}
	}

	reply := theme.Compose(mention.AuthorName, promptNeedDigit, entity.RenderBoard(session.Board), "")

	return Outcome{Reply: reply}
}
