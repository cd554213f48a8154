package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stardevs/community-backend/internal/botapi"
	"github.com/stardevs/community-backend/internal/models"
	"github.com/stardevs/community-backend/internal/query"
)

func listCmd(open Opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List scam logs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var req botapi.ListReports
			req.Status, _ = cmd.Flags().GetString("status")
			req.Search, _ = cmd.Flags().GetString("search")
			req.Limit, _ = cmd.Flags().GetInt("limit")
			req.Offset, _ = cmd.Flags().GetInt("offset")

			data, err := dispatch(open, &req)
			if err != nil {
				return err
			}
			reports := data.([]models.ScamReport)
			return render(cmd, reports, func(w io.Writer) error {
				if len(reports) == 0 {
					fmt.Fprintln(w, "No scam logs found")
					return nil
				}
				return reportTable(w, reports)
			})
		},
	}
	cmd.Flags().String("status", query.StatusAll, "filter by status: all, pending, verified or rejected")
	cmd.Flags().String("search", "", "case-insensitive match on user id, category or description")
	cmd.Flags().Int("limit", 20, "maximum rows (0 for no limit)")
	cmd.Flags().Int("offset", 0, "rows to skip")
	return cmd
}

func getCmd(open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "get [id]",
		Short: "Show one scam log by id or id prefix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := dispatch(open, &botapi.GetReport{ID: args[0]})
			if err != nil {
				return err
			}
			report := data.(models.ScamReport)
			return render(cmd, report, func(w io.Writer) error {
				return reportDetail(w, report)
			})
		},
	}
}

func setStatusCmd(open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "set-status [id] [pending|verified|rejected]",
		Short: "Change the review status of a scam log",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := dispatch(open, &botapi.SetStatus{
				LogID:  args[0],
				Status: models.ReportStatus(strings.ToLower(args[1])),
			})
			if err != nil {
				return err
			}
			report := data.(models.ScamReport)
			return render(cmd, report, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "✓ %s is now %s\n", report.ID, statusLabel(report.Status))
				return err
			})
		},
	}
}

func removeCmd(open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "remove [id]",
		Short: "Delete a scam log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := dispatch(open, &botapi.RemoveReport{LogID: args[0]}); err != nil {
				return err
			}
			result := map[string]any{"id": args[0], "removed": true}
			return render(cmd, result, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "✓ Removed %s\n", args[0])
				return err
			})
		},
	}
}

func reportTable(w io.Writer, reports []models.ScamReport) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATUS\tSUBJECT\tCATEGORY\tREPORTED BY\tCREATED")
	for _, r := range reports {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID,
			statusLabel(r.Status),
			r.Subject.UserID,
			r.Details.Category,
			r.ReportedBy,
			r.CreatedAt.Format("2006-01-02 15:04"),
		)
	}
	return tw.Flush()
}

func reportDetail(w io.Writer, r models.ScamReport) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%s\n", r.ID)
	fmt.Fprintf(tw, "Status:\t%s\n", statusLabel(r.Status))
	fmt.Fprintf(tw, "Reported by:\t%s\n", r.ReportedBy)
	fmt.Fprintf(tw, "Subject:\t%s\n", party(r.Subject))
	fmt.Fprintf(tw, "Victim:\t%s\n", party(r.Victim))
	fmt.Fprintf(tw, "Category:\t%s\n", r.Details.Category)
	fmt.Fprintf(tw, "Description:\t%s\n", r.Details.Description)
	fmt.Fprintf(tw, "Occurred:\t%s\n", r.Details.DateOccurred)
	fmt.Fprintf(tw, "Created:\t%s\n", r.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(tw, "Updated:\t%s\n", r.UpdatedAt.Format("2006-01-02 15:04:05"))
	for i, e := range r.Details.Evidence {
		fmt.Fprintf(tw, "Evidence %d:\t%s\n", i+1, e)
	}
	return tw.Flush()
}

func party(p models.Party) string {
	if p.UserID == "" {
		return "-"
	}
	if p.AdditionalInfo == "" {
		return p.UserID
	}
	return p.UserID + " (" + p.AdditionalInfo + ")"
}

func statusLabel(s models.ReportStatus) string {
	switch s {
	case models.StatusVerified:
		return color.New(color.FgRed).Sprint(string(s))
	case models.StatusRejected:
		return color.New(color.FgHiBlack).Sprint(string(s))
	default:
		return color.New(color.FgYellow).Sprint(string(s))
	}
}
