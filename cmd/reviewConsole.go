package cmd

import (
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"speakerdesk/internal/bootstrap"
	"speakerdesk/internal/bootstrap/logging"
	"speakerdesk/internal/errs"
	"speakerdesk/internal/usecase/review"
	"speakerdesk/internal/usecase/reviewconsole"
)

var consoleReviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Start the speaker review console",
	RunE: withApp(func(cmd *cobra.Command, app *bootstrap.App, svc *review.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		profile, err := resolveProfile(cmd, app)
		if err != nil {
			return err
		}
		exportDir, _ := cmd.Flags().GetString("export-dir")

		model := reviewconsole.NewDashboardModel(ctx, svc, reviewconsole.Options{
			Profile:   profile,
			ExportDir: exportDir,
		})

		program := tea.NewProgram(model, tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return errs.Wrap(err, "run review console")
		}
		return nil
	}),
}

// resolveProfile loads the review profile named by --profile, falling back to
// the config file's review.profile_file, then to built-in defaults.
func resolveProfile(cmd *cobra.Command, app *bootstrap.App) (review.Profile, error) {
	path, _ := cmd.Flags().GetString("profile")
	if strings.TrimSpace(path) == "" && app != nil {
		path = app.Config.Review.ProfileFile
	}

	profile, err := review.LoadProfile(path)
	if err != nil {
		return review.Profile{}, errs.Wrapf(err, "load review profile %q", path)
	}
	return profile, nil
}

func init() {
	consoleCmd.AddCommand(consoleReviewCmd)
	consoleReviewCmd.Flags().String("profile", "", "Review profile TOML file")
	consoleReviewCmd.Flags().String("export-dir", ".", "Directory CSV exports are written to")
}
