package cli

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"fitChallengeEngine/internal/calendar"
	"fitChallengeEngine/internal/snapshot"
)

// NewStatsCommand prints one participant's window stats.
func NewStatsCommand(opts *RootOptions) *cobra.Command {
	var participant, from, to string

	cmd := &cobra.Command{
		Use:   "stats [snapshot]",
		Short: "Show a participant's aggregated stats for a window",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, svc, err := loadService(args)
			if err != nil {
				return err
			}

			participantID, err := resolveParticipant(snap, participant)
			if err != nil {
				return err
			}

			windowStart, windowEnd, err := resolveWindow(snap.Challenge.StartDate, snap.Challenge.EndDate, from, to)
			if err != nil {
				return err
			}

			stats, err := svc.ParticipantStats(cmd.Context(), snap.Challenge.ID, participantID, windowStart, windowEnd)
			if err != nil {
				return err
			}

			if opts.Format == "yaml" {
				return printYAML(cmd, stats)
			}

			cmd.Printf("Window %s .. %s\n", calendar.DayKey(stats.WindowStart), calendar.DayKey(stats.WindowEnd))
			categories := make([]string, 0, len(stats.PerCategoryDays))
			for c := range stats.PerCategoryDays {
				categories = append(categories, c)
			}
			sort.Strings(categories)
			for _, c := range categories {
				cmd.Printf("  %-14s %d day(s)\n", c, stats.PerCategoryDays[c])
			}
			cmd.Printf("Score: %d\n", stats.Score)
			cmd.Printf("Goal met: %v\n", stats.Successful)
			return nil
		},
	}

	cmd.Flags().StringVar(&participant, "participant", "", "participant id or display name (required)")
	cmd.Flags().StringVar(&from, "from", "", "window start (YYYY-MM-DD), default challenge start")
	cmd.Flags().StringVar(&to, "to", "", "window end (YYYY-MM-DD), default challenge end")
	cmd.MarkFlagRequired("participant")
	return cmd
}

// resolveParticipant accepts either a participant UUID or a display name.
func resolveParticipant(snap *snapshot.Snapshot, ref string) (uuid.UUID, error) {
	if id, err := uuid.Parse(ref); err == nil {
		return id, nil
	}
	for _, p := range snap.Participants {
		if p.DisplayName == ref {
			return p.ID, nil
		}
	}
	return uuid.Nil, fmt.Errorf("participant %q not found in snapshot", ref)
}

func resolveWindow(defaultStart, defaultEnd time.Time, from, to string) (time.Time, time.Time, error) {
	start, end := calendar.Normalize(defaultStart), calendar.Normalize(defaultEnd)
	var err error
	if from != "" {
		if start, err = calendar.ParseDay(from); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if to != "" {
		if end, err = calendar.ParseDay(to); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	return start, end, nil
}
