package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/amezab/fittrack/internal/client/session"
)

func (a *App) route() session.Route {
	return a.session.Route()
}

// getStatus renders the prompt decoration: the screen name, with a
// spinner marker while an operation is in flight.
func (a *App) getStatus() string {
	s := a.session.State()
	status := session.DecideRoute(s.Authenticated, s.SetupDone).String()
	if s.Loading {
		status += " ..."
	}
	return fmt.Sprintf("(%s)", status)
}

// Root runs the interactive loop on stdin until the user exits.
func (a *App) Root(ctx context.Context) {
	fmt.Println("Welcome to FitTrack CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
