package cli

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/stardevs/community-backend/internal/botapi"
	"github.com/stardevs/community-backend/internal/models"
)

func statsCmd(open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the community stats record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := dispatch(open, &botapi.GetStats{})
			if err != nil {
				return err
			}
			stats := data.(models.StatsRecord)
			return render(cmd, stats, func(w io.Writer) error {
				return statsTable(w, stats)
			})
		},
	}
}

func setMemberCountCmd(open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "set-member-count [count]",
		Short: "Overwrite the Discord member count",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			count, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid member count: %s", args[0])
			}
			data, err := dispatch(open, &botapi.SetMemberCount{MemberCount: &count})
			if err != nil {
				return err
			}
			stats := data.(models.StatsRecord)
			return render(cmd, stats, func(w io.Writer) error {
				return statsTable(w, stats)
			})
		},
	}
}

func statsTable(w io.Writer, s models.StatsRecord) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Members:\t%d\n", s.MemberCount)
	fmt.Fprintf(tw, "Active projects:\t%d\n", s.ActiveProjects)
	fmt.Fprintf(tw, "Contributors:\t%d\n", s.Contributors)
	fmt.Fprintf(tw, "Code commits:\t%s\n", s.CodeCommits)
	fmt.Fprintf(tw, "Last updated:\t%s\n", s.LastUpdated.Format("2006-01-02 15:04:05"))
	return tw.Flush()
}
