package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"fitChallengeEngine/internal/leaderboard"
	"fitChallengeEngine/internal/scoring"
)

// NewLeaderboardCommand prints the ranked leaderboard for a window or for the
// whole challenge.
func NewLeaderboardCommand(opts *RootOptions) *cobra.Command {
	var from, to string
	var allTime bool

	cmd := &cobra.Command{
		Use:   "leaderboard [snapshot]",
		Short: "Show the ranked leaderboard for a window",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, svc, err := loadService(args)
			if err != nil {
				return err
			}

			var board *leaderboard.Leaderboard
			if allTime {
				board, err = svc.AllTimeLeaderboard(cmd.Context(), snap.Challenge.ID)
			} else {
				windowStart, windowEnd, werr := resolveWindow(snap.Challenge.StartDate, snap.Challenge.EndDate, from, to)
				if werr != nil {
					return werr
				}
				board, err = svc.Leaderboard(cmd.Context(), snap.Challenge.ID, windowStart, windowEnd)
			}
			if err != nil {
				return err
			}

			if opts.Format == "yaml" {
				return printYAML(cmd, boardView(board))
			}

			for _, e := range board.Entries {
				badge := ""
				if e.Successful {
					badge = " [all conditions met]"
				}
				cmd.Printf("%2d. %-24s %4d%s\n", e.Rank, e.DisplayName, e.Score, badge)
				if len(e.DayStatuses) > 0 {
					cmd.Printf("    %s\n", dayGrid(e.DayStatuses))
				}
			}
			cmd.Printf("%d participant(s)\n", board.TotalParticipants)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "window start (YYYY-MM-DD), default challenge start")
	cmd.Flags().StringVar(&to, "to", "", "window end (YYYY-MM-DD), default challenge end")
	cmd.Flags().BoolVar(&allTime, "all-time", false, "rank the whole challenge; success requires every milestone window")
	return cmd
}

type entryView struct {
	Participant string           `yaml:"participant"`
	DisplayName string           `yaml:"display_name"`
	Score       int              `yaml:"score"`
	Rank        int              `yaml:"rank"`
	Successful  bool             `yaml:"successful"`
	DayStatuses []scoring.Status `yaml:"day_statuses,omitempty"`
}

type leaderboardView struct {
	Entries           []entryView `yaml:"entries"`
	TotalParticipants int         `yaml:"total_participants"`
}

func boardView(board *leaderboard.Leaderboard) leaderboardView {
	view := leaderboardView{TotalParticipants: board.TotalParticipants}
	for _, e := range board.Entries {
		view.Entries = append(view.Entries, entryView{
			Participant: e.ParticipantID.String(),
			DisplayName: e.DisplayName,
			Score:       e.Score,
			Rank:        e.Rank,
			Successful:  e.Successful,
			DayStatuses: e.DayStatuses,
		})
	}
	return view
}

// dayGrid renders day statuses as one character per day: F full, P partial,
// dot for none.
func dayGrid(statuses []scoring.Status) string {
	var b strings.Builder
	for _, s := range statuses {
		switch s {
		case scoring.StatusFull:
			b.WriteByte('F')
		case scoring.StatusPartial:
			b.WriteByte('P')
		default:
			b.WriteByte('.')
		}
	}
	return b.String()
}
