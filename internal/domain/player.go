package domain

import (
	"errors"
	"strings"
)

// Color is the display color associated with a seat.
type Color string

const (
	Red  Color = "red"
	Blue Color = "blue"
)

// Player is a named participant. ID is the value written into board cells.
type Player struct {
	ID    Cell
	Name  string
	Color Color
}

// ErrValidation is matched by every *ValidationError via errors.Is.
var ErrValidation = errors.New("validation failed")

// ValidationError reports an unusable setup value such as an empty name.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string { return e.Field + ": " + e.Reason }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// newPlayers validates both names and returns the players in seat order.
func newPlayers(name1, name2 string) ([]Player, error) {
	n1, n2 := strings.TrimSpace(name1), strings.TrimSpace(name2)
	if n1 == "" {
		return nil, &ValidationError{Field: "player1", Reason: "name cannot be empty"}
	}
	if n2 == "" {
		return nil, &ValidationError{Field: "player2", Reason: "name cannot be empty"}
	}
	return []Player{
		{ID: PlayerOne, Name: n1, Color: Red},
		{ID: PlayerTwo, Name: n2, Color: Blue},
	}, nil
}
