package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goalgrid/goalgrid/internal/cli/formatter"
)

func newUsersCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List all known users",
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := app.Lessons.ListUsers(context.Background())
			if err != nil {
				return err
			}
			if len(users) == 0 {
				fmt.Println(formatter.StyleDim.Render("No users yet."))
				return nil
			}
			for _, id := range users {
				fmt.Println(formatter.StyleFg.Render(id))
			}
			return nil
		},
	}
}
