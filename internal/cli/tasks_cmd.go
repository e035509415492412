package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/goalgrid/goalgrid/internal/cli/formatter"
	"github.com/goalgrid/goalgrid/internal/domain"
)

func newTasksCmd(app *App) *cobra.Command {
	var userID, date string

	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "View and complete the day's tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID == "" {
				return fmt.Errorf("--user is required")
			}
			if date == "" {
				date = domain.Today()
			}

			found, err := app.Service.GetLesson(context.Background(), userID, date)
			if err != nil {
				return err
			}

			if !app.interactive() {
				fmt.Print(formatter.Tasks(found.Tasks))
				return nil
			}

			model := newTaskListModel(app, userID, date, found.Tasks)
			_, err = tea.NewProgram(model).Run()
			return err
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User ID")
	cmd.Flags().StringVar(&date, "date", "", "Lesson date (YYYY-MM-DD, default today)")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
