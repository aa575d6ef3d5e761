package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"speakerdesk/internal/bootstrap"
	"speakerdesk/internal/bootstrap/logging"
	domainreview "speakerdesk/internal/domain/review"
	"speakerdesk/internal/errs"
	"speakerdesk/internal/usecase/review"
)

// seedCmd fills an empty database with demo entries so the console has
// something to show during evaluation.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert demo entries",
	RunE: withApp(func(cmd *cobra.Command, app *bootstrap.App, svc *review.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		if err := app.InitSchema(ctx); err != nil {
			return errs.Wrap(err, "initialize schema")
		}

		inputs := []review.CreateEntryInput{
			{
				Kind:     domainreview.KindApplication,
				FullName: "Mira Tan",
				Topic:    "Designing cities for heat waves",
				Application: review.ApplicationDetails{
					Email:       "mira.tan@example.com",
					MobilePhone: "555-0101",
					Job:         "Urban planner",
					Idea: domainreview.IdeaOutline{
						CommonBelief: "Air conditioning will save us",
						CoreIdea:     "Shade infrastructure as public utility",
					},
				},
			},
			{
				Kind:     domainreview.KindApplication,
				FullName: "Diego Alvarez",
				Topic:    "What ant colonies teach us about logistics",
				Status:   domainreview.StatusShortlisted,
				Application: review.ApplicationDetails{
					Email:       "d.alvarez@example.com",
					MobilePhone: "555-0102",
					Job:         "Operations researcher",
				},
			},
			{
				Kind:     domainreview.KindApplication,
				FullName: "Sana Qureshi",
				Topic:    "Teaching math without numbers",
				Application: review.ApplicationDetails{
					MobilePhone: "555-0103",
					Job:         "Teacher",
				},
			},
			{
				Kind:     domainreview.KindNomination,
				FullName: "Prof. Elena Voss",
				Topic:    "The last glaciers of the Alps",
				Nomination: review.NominationDetails{
					Contact:     "elena.voss@example.edu",
					NominatedBy: "Jonas Keller",
				},
			},
			{
				Kind:     domainreview.KindNomination,
				FullName: "Kofi Mensah",
				Topic:    "Community radio in the smartphone era",
				Status:   domainreview.StatusContacted,
				Nomination: review.NominationDetails{
					Contact:     "+233 555 0104",
					NominatedBy: "Abena Osei",
				},
			},
		}

		for _, input := range inputs {
			entry, err := svc.CreateEntry(ctx, input)
			if err != nil {
				return errs.Wrapf(err, "seed entry %q", input.FullName)
			}
			logging.Info(ctx, "seeded entry",
				slog.String("id", entry.Core().ID),
				slog.String("kind", string(entry.Kind())),
			)
		}

		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "seeded %d entries\n", len(inputs)); err != nil {
			return errs.Wrap(err, "write seed output")
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
