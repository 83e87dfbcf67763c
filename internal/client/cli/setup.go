package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/amezab/fittrack/internal/client/models"
	"github.com/amezab/fittrack/internal/client/session"
	"github.com/amezab/fittrack/internal/common"
)

// getInt, getFloat, and getSelection are indirections used to
// facilitate testing of the wizard without a terminal.
var getInt = GetInt
var getFloat = GetFloat
var getSelection = GetSelection

// Setup walks the user through the onboarding wizard and submits the
// collected profile. Without an authenticated session it refuses up
// front instead of failing on the network call.
func (a *App) Setup(ctx context.Context) error {
	if a.session.Route() == session.RouteSignIn {
		fmt.Println("Log in first.")
		return common.ErrNotAuthenticated
	}

	gender, err := a.readGender()
	if err != nil {
		return err
	}

	age, err := getInt(a.reader, "Enter age", 10, 120, os.Stdout)
	if err != nil {
		return err
	}

	weight, err := getFloat(a.reader, "Enter weight (kg)", 20, 400, os.Stdout)
	if err != nil {
		return err
	}

	height, err := getFloat(a.reader, "Enter height (cm)", 80, 260, os.Stdout)
	if err != nil {
		return err
	}

	goals, err := a.readGoals()
	if err != nil {
		return err
	}

	profile := models.OnboardingProfile{
		Gender: gender,
		Age:    age,
		Weight: weight,
		Height: height,
		Goals:  goals,
	}

	if err := a.session.CompleteSetup(ctx, profile); err != nil {
		a.reportAuthError(ctx, err)
		return err
	}

	fmt.Println("Profile saved. Welcome to FitTrack!")
	return nil
}

func (a *App) readGender() (string, error) {
	for {
		text, err := getSimpleText(a.reader, "Enter gender (male/female/other)", os.Stdout)
		if err != nil {
			return "", err
		}
		g := strings.ToLower(text)
		switch g {
		case "male", "female", "other":
			return g, nil
		}
		fmt.Println("Please answer male, female, or other.")
	}
}

func (a *App) readGoals() ([]models.Goal, error) {
	options := make([]string, len(models.GoalCatalog))
	for i, g := range models.GoalCatalog {
		options[i] = g.Meta
	}

	picks, err := getSelection(a.reader, "Pick your goals:", options, os.Stdout)
	if err != nil {
		return nil, err
	}

	goals := make([]models.Goal, 0, len(picks))
	for _, i := range picks {
		goals = append(goals, models.GoalCatalog[i])
	}
	return goals, nil
}

// Status prints the current session snapshot and the screen it maps to.
// It also refreshes the setup flag from the server when a session is
// active, so the output reflects reality rather than the last cached
// answer.
func (a *App) Status(ctx context.Context) error {
	if err := a.session.CheckSetup(ctx); err != nil && !errors.Is(err, common.ErrNotAuthenticated) {
		a.log.Warn(ctx, "setup status refresh failed", "err", err)
	}

	s := a.session.State()
	fmt.Printf("authenticated: %s\n", s.Authenticated)
	fmt.Printf("setup done:    %s\n", s.SetupDone)
	fmt.Printf("screen:        %s\n", session.DecideRoute(s.Authenticated, s.SetupDone))
	return nil
}
