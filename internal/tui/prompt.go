package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"
)

// ErrAborted is returned by PromptPlayers when the players cancel the form.
var ErrAborted = huh.ErrUserAborted

// validateName rejects blank names; huh keeps the field focused until it passes.
func validateName(label string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(label + "'s name cannot be empty. Please enter a name.")
		}
		return nil
	}
}

// PromptPlayers asks for both player names. Defaults prefill the fields.
func PromptPlayers(default1, default2 string) (string, string, error) {
	p1, p2 := default1, default2
	form := huh.NewForm(huh.NewGroup(
		huh.NewNote().
			Title("Welcome to Connect Three!").
			Description("Enter the player names to begin."),
		huh.NewInput().Title("Player 1's name").Value(&p1).Validate(validateName("Player 1")),
		huh.NewInput().Title("Player 2's name").Value(&p2).Validate(validateName("Player 2")),
	))
	if err := form.Run(); err != nil {
		return "", "", err
	}
	return strings.TrimSpace(p1), strings.TrimSpace(p2), nil
}
