package cli

import (
	"net/http"

	"github.com/goalgrid/goalgrid/internal/lesson"
	"github.com/goalgrid/goalgrid/internal/store"
	"github.com/spf13/cobra"
)

// App holds the wired dependencies the CLI commands work against.
type App struct {
	Lessons store.LessonStore
	Service lesson.Service

	// Handler is the HTTP API handler used by the serve command.
	Handler http.Handler

	// Addr is the default listen address for the serve command.
	Addr string

	// IsInteractive reports whether stdin is an interactive terminal;
	// commands use it to decide between forms and flags.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "goalgrid" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "goalgrid",
		Short:         "Daily lesson and task generator",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(
		newServeCmd(app),
		newLessonCmd(app),
		newTasksCmd(app),
		newUsersCmd(app),
	)

	return root
}
