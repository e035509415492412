package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/goalgrid/goalgrid/internal/cli/formatter"
	"github.com/goalgrid/goalgrid/internal/domain"
	"github.com/goalgrid/goalgrid/internal/lesson"
)

func newLessonCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lesson",
		Short: "Create and view daily lessons",
	}

	cmd.AddCommand(
		newLessonCreateCmd(app),
		newLessonShowCmd(app),
		newLessonSummaryCmd(app),
	)

	return cmd
}

func newLessonCreateCmd(app *App) *cobra.Command {
	var userID, date, focus, goalsFlag string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Generate today's lesson for a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			// Prompt for missing inputs when running in a terminal.
			if userID == "" && app.interactive() {
				if err := lessonCreateForm(&userID, &focus, &goalsFlag); err != nil {
					return err
				}
			}
			if userID == "" {
				return fmt.Errorf("--user is required")
			}
			if date == "" {
				date = domain.Today()
			}
			if !domain.ValidDate(date) {
				return fmt.Errorf("date must be YYYY-MM-DD")
			}

			reqCtx := lesson.CreateContext{Focus: focus}
			if goalsFlag != "" {
				for _, g := range strings.Split(goalsFlag, ",") {
					if g = strings.TrimSpace(g); g != "" {
						reqCtx.Goals = append(reqCtx.Goals, g)
					}
				}
			}

			created, err := app.Service.CreateDailyLesson(ctx, userID, date, reqCtx)
			if err != nil {
				return err
			}
			fmt.Println(formatter.Lesson(created))
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User ID")
	cmd.Flags().StringVar(&date, "date", "", "Lesson date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&focus, "focus", "", "Focus area for today's lesson")
	cmd.Flags().StringVar(&goalsFlag, "goals", "", "Comma-separated goals")
	return cmd
}

func lessonCreateForm(userID, focus, goals *string) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("User ID").
				Placeholder("u1").
				Value(userID).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("user id is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Focus (optional)").
				Placeholder("deep work").
				Value(focus),
			huh.NewText().
				Title("Goals, one per line (optional)").
				Value(goals),
		),
	).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return err
	}
	*goals = strings.Join(strings.Split(*goals, "\n"), ",")
	return nil
}

func newLessonShowCmd(app *App) *cobra.Command {
	var userID, date string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a stored lesson",
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
			fmt.Println(formatter.Lesson(found))
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User ID")
	cmd.Flags().StringVar(&date, "date", "", "Lesson date (YYYY-MM-DD, default today)")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func newLessonSummaryCmd(app *App) *cobra.Command {
	var userID, date string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Summarize the day's tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID == "" {
				return fmt.Errorf("--user is required")
			}
			if date == "" {
				date = domain.Today()
			}

			summary, err := app.Service.SummarizeTasks(context.Background(), userID, date)
			if err != nil {
				return err
			}
			fmt.Println(formatter.StyleGreen.Render(summary))
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User ID")
	cmd.Flags().StringVar(&date, "date", "", "Lesson date (YYYY-MM-DD, default today)")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
