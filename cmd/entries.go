package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"speakerdesk/internal/bootstrap"
	"speakerdesk/internal/bootstrap/logging"
	domainreview "speakerdesk/internal/domain/review"
	"speakerdesk/internal/errs"
	"speakerdesk/internal/usecase/review"
)

var entriesCmd = &cobra.Command{
	Use:   "entries",
	Short: "Inspect and manage review entries",
}

var entriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List entries, newest first",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *review.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		filter, err := buildEntryFilter(cmd)
		if err != nil {
			return err
		}

		entries, err := svc.ListEntries(ctx)
		if err != nil {
			logging.Error(ctx, "list entries failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "list entries")
		}

		out := cmd.OutOrStdout()
		visible := domainreview.ApplyFilter(entries, filter)
		for _, entry := range visible {
			core := entry.Core()
			kind := "application"
			if entry.Kind() == domainreview.KindNomination {
				kind = "nomination"
			}
			flag := ""
			if core.Flagged {
				flag = " flagged"
			}
			if _, err := fmt.Fprintf(out, "%s  %-11s %-14s r%d%s  %s  %s\n",
				core.ID, kind, core.Status, core.Rating, flag,
				core.SubmittedAt.Format("2006-01-02"), core.FullName,
			); err != nil {
				return errs.Wrap(err, "write entries output")
			}
		}
		if _, err := fmt.Fprintf(out, "%d entries\n", len(visible)); err != nil {
			return errs.Wrap(err, "write entries output")
		}
		return nil
	}),
}

var entriesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an entry",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *review.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		input, err := buildCreateInput(cmd)
		if err != nil {
			return err
		}

		entry, err := svc.CreateEntry(ctx, input)
		if err != nil {
			logging.Error(ctx, "create entry failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "create entry")
		}

		core := entry.Core()
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "created %s %s (%s)\n", entry.Kind(), core.ID, core.FullName); err != nil {
			return errs.Wrap(err, "write create output")
		}
		return nil
	}),
}

func buildCreateInput(cmd *cobra.Command) (review.CreateEntryInput, error) {
	kindRaw, _ := cmd.Flags().GetString("kind")
	var kind domainreview.EntryKind
	switch strings.ToLower(strings.TrimSpace(kindRaw)) {
	case "application":
		kind = domainreview.KindApplication
	case "nomination":
		kind = domainreview.KindNomination
	default:
		return review.CreateEntryInput{}, fmt.Errorf("unknown kind %q (expected: application or nomination)", kindRaw)
	}

	input := review.CreateEntryInput{Kind: kind}
	input.FullName, _ = cmd.Flags().GetString("name")
	input.Topic, _ = cmd.Flags().GetString("topic")
	input.PriorTEDTalk, _ = cmd.Flags().GetString("prior-talk")

	statusRaw, _ := cmd.Flags().GetString("status")
	if strings.TrimSpace(statusRaw) != "" {
		status, ok := domainreview.ParseStatus(statusRaw)
		if !ok {
			return review.CreateEntryInput{}, fmt.Errorf("unknown status %q", statusRaw)
		}
		input.Status = status
	}

	input.Application.Email, _ = cmd.Flags().GetString("email")
	input.Application.MobilePhone, _ = cmd.Flags().GetString("phone")
	input.Application.WeChatID, _ = cmd.Flags().GetString("wechat")
	input.Application.Gender, _ = cmd.Flags().GetString("gender")
	input.Application.Job, _ = cmd.Flags().GetString("job")
	input.Application.RehearsalAvailability, _ = cmd.Flags().GetString("rehearsal")
	input.Application.Idea.CommonBelief, _ = cmd.Flags().GetString("common-belief")
	input.Application.Idea.CoreIdea, _ = cmd.Flags().GetString("core-idea")
	input.Application.Idea.PersonalInsight, _ = cmd.Flags().GetString("personal-insight")
	input.Application.Idea.PotentialImpact, _ = cmd.Flags().GetString("potential-impact")
	input.Nomination.Contact, _ = cmd.Flags().GetString("contact")
	input.Nomination.NominatedBy, _ = cmd.Flags().GetString("nominated-by")

	return input, nil
}

func init() {
	rootCmd.AddCommand(entriesCmd)
	entriesCmd.AddCommand(entriesListCmd)
	entriesCmd.AddCommand(entriesCreateCmd)

	entriesListCmd.Flags().String("tab", "all", "Entry tab: all|applications|nominations")
	entriesListCmd.Flags().String("status", "", "Comma separated status filter")
	entriesListCmd.Flags().String("search", "", "Substring match on name or topic")

	entriesCreateCmd.Flags().String("kind", "application", "Entry kind: application|nomination")
	entriesCreateCmd.Flags().String("name", "", "Full name")
	entriesCreateCmd.Flags().String("topic", "", "Talk topic")
	entriesCreateCmd.Flags().String("status", "", "Initial status (default: under_review)")
	entriesCreateCmd.Flags().String("prior-talk", "", "Prior TED talk reference")
	entriesCreateCmd.Flags().String("email", "", "Email (applications)")
	entriesCreateCmd.Flags().String("phone", "", "Mobile phone (applications)")
	entriesCreateCmd.Flags().String("wechat", "", "WeChat id (applications)")
	entriesCreateCmd.Flags().String("gender", "", "Gender (applications)")
	entriesCreateCmd.Flags().String("job", "", "Job (applications)")
	entriesCreateCmd.Flags().String("rehearsal", "", "Rehearsal availability (applications)")
	entriesCreateCmd.Flags().String("common-belief", "", "Idea outline: common belief challenged")
	entriesCreateCmd.Flags().String("core-idea", "", "Idea outline: core idea")
	entriesCreateCmd.Flags().String("personal-insight", "", "Idea outline: personal insight")
	entriesCreateCmd.Flags().String("potential-impact", "", "Idea outline: potential impact")
	entriesCreateCmd.Flags().String("contact", "", "Contact info (nominations)")
	entriesCreateCmd.Flags().String("nominated-by", "", "Nominating person (nominations)")
}
