package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"speakerdesk/internal/bootstrap"
	"speakerdesk/internal/bootstrap/logging"
	domainreview "speakerdesk/internal/domain/review"
	"speakerdesk/internal/errs"
	"speakerdesk/internal/usecase/review"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export entries as CSV",
	RunE: withApp(func(cmd *cobra.Command, app *bootstrap.App, svc *review.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		filter, err := buildEntryFilter(cmd)
		if err != nil {
			return err
		}

		profile, err := resolveProfile(cmd, app)
		if err != nil {
			return err
		}
		base, _ := cmd.Flags().GetString("base")
		if strings.TrimSpace(base) == "" {
			base = profile.Exports.BaseName
		}
		outPath, _ := cmd.Flags().GetString("out")

		entries, err := svc.ListEntries(ctx)
		if err != nil {
			logging.Error(ctx, "list entries for export failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "list entries")
		}

		visible := domainreview.ApplyFilter(entries, filter)
		payload := domainreview.ExportCSV(visible, filter.Tab)

		writer, closeFn, err := resolveExportWriter(cmd, outPath)
		if err != nil {
			return err
		}
		if _, err := writer.Write(payload); err != nil {
			_ = closeFn()
			return errs.Wrap(err, "write csv output")
		}
		if err := closeFn(); err != nil {
			return errs.Wrap(err, "close csv output")
		}

		if outPath == "" {
			return nil
		}
		logging.Info(ctx, "csv exported",
			slog.String("path", outPath),
			slog.Int("entries", len(visible)),
			slog.String("suggested_name", domainreview.ExportFilename(base, filter.Tab)),
		)
		return nil
	}),
}

// buildEntryFilter turns the shared --tab/--status/--search flags into a
// domain filter.
func buildEntryFilter(cmd *cobra.Command) (domainreview.Filter, error) {
	filter := domainreview.NewFilter()

	tabRaw, _ := cmd.Flags().GetString("tab")
	if strings.TrimSpace(tabRaw) != "" {
		tab, ok := domainreview.ParseTab(tabRaw)
		if !ok {
			return domainreview.Filter{}, fmt.Errorf("unknown tab %q (expected: all, applications or nominations)", tabRaw)
		}
		filter.Tab = tab
	}

	statusRaw, _ := cmd.Flags().GetString("status")
	for _, piece := range strings.Split(statusRaw, ",") {
		piece = strings.TrimSpace(piece)
		if piece == "" {
			continue
		}
		status, ok := domainreview.ParseStatus(piece)
		if !ok {
			return domainreview.Filter{}, fmt.Errorf("unknown status %q", piece)
		}
		filter.Statuses = filter.Statuses.Toggle(status)
	}

	search, _ := cmd.Flags().GetString("search")
	filter.Query = search
	return filter, nil
}

func resolveExportWriter(cmd *cobra.Command, outPath string) (io.Writer, func() error, error) {
	trimmed := strings.TrimSpace(outPath)
	if trimmed == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}

	f, err := os.Create(trimmed)
	if err != nil {
		return nil, nil, errs.Wrapf(err, "open output file %q", trimmed)
	}
	return f, f.Close, nil
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().String("tab", "all", "Entry tab: all|applications|nominations")
	exportCmd.Flags().String("status", "", "Comma separated status filter")
	exportCmd.Flags().String("search", "", "Substring match on name or topic")
	exportCmd.Flags().String("base", "", "Base export file name (default from profile)")
	exportCmd.Flags().String("out", "", "Output file path (default: stdout)")
	exportCmd.Flags().String("profile", "", "Review profile TOML file")
}
