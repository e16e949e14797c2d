package entity

import (
	"fmt"

	"github.com/ninedttt/gamemaker-bot/internal/apperror"
)

const (
	StatusActive = "active"
	StatusEnded  = "ended"

	// Board glyphs. The human always plays PlayerMark.
	EmptyCell  = "⬜"
	PlayerMark = "❌"
	BotMark    = "⭕"
)

var WinCombos = [][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// GameSession is one conversation's game: the board, whether the game is
// still running, and the id of the last message applied to it.
type GameSession struct {
	Board         [9]string `json:"board"`
	Status        string    `json:"status"`
	LastMessageID string    `json:"last_message_id,omitempty"`
}

func NewGameSession() *GameSession {
	session := &GameSession{Status: StatusActive}
	for i := range session.Board {
		session.Board[i] = EmptyCell
	}
	return session
}

func (that *GameSession) IsActive() bool {
	return that.Status == StatusActive
}

func (that *GameSession) IsEnded() bool {
	return that.Status == StatusEnded
}

// ApplyMove places mark at cell. The cell must be empty and in range;
// callers reject bad input before mutating anything.
func (that *GameSession) ApplyMove(cell int, mark string) error {
	if cell < 0 || cell >= len(that.Board) {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if that.Board[cell] != EmptyCell {
		return apperror.ErrCellOccupied
	}

	that.Board[cell] = mark

	return nil
}

// EmptyCells returns the indices still open for a move.
func (that *GameSession) EmptyCells() []int {
	cells := make([]int, 0, len(that.Board))
	for i, cell := range that.Board {
		if cell == EmptyCell {
			cells = append(cells, i)
		}
	}
	return cells
}

// CheckWinner reports whether mark holds a full win line. Always false for
// the empty glyph.
func CheckWinner(board [9]string, mark string) bool {
	if mark == EmptyCell {
		return false
	}

	for _, combo := range WinCombos {
		if board[combo[0]] == mark && board[combo[1]] == mark && board[combo[2]] == mark {
			return true
		}
	}

	return false
}

func IsFull(board [9]string) bool {
	for _, cell := range board {
		if cell == EmptyCell {
			return false
		}
	}
	return true
}

// RenderBoard formats the board as three rows of three glyphs.
func RenderBoard(board [9]string) string {
	return fmt.Sprintf(
		"%s%s%s\n%s%s%s\n%s%s%s",
		board[0], board[1], board[2],
		board[3], board[4], board[5],
		board[6], board[7], board[8],
	)
}
