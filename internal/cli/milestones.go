package cli

import (
	"os"

	"github.com/spf13/cobra"

	"fitChallengeEngine/internal/calendar"
	"fitChallengeEngine/internal/milestone"
)

// NewMilestonesCommand prints a challenge's milestone partition.
func NewMilestonesCommand(opts *RootOptions) *cobra.Command {
	var onDate string

	cmd := &cobra.Command{
		Use:   "milestones [snapshot]",
		Short: "List a challenge's milestone periods",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, svc, err := loadService(args)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			milestones, err := svc.Milestones(ctx, snap.Challenge.ID)
			if err != nil {
				return err
			}

			var active *milestone.Milestone
			if onDate == "" {
				onDate = os.Getenv("REFERENCE_DATE")
			}
			if onDate != "" {
				ref, err := calendar.ParseDay(onDate)
				if err != nil {
					return err
				}
				active, err = svc.ActiveMilestone(ctx, snap.Challenge.ID, ref)
				if err != nil {
					return err
				}
			}

			if opts.Format == "yaml" {
				return printYAML(cmd, milestones)
			}

			for _, m := range milestones {
				marker := " "
				if active != nil && active.Index == m.Index {
					marker = "*"
				}
				cmd.Printf("%s %-10s %s .. %s\n", marker, m.Label, calendar.DayKey(m.Start), calendar.DayKey(m.End))
			}
			if onDate != "" && active == nil {
				cmd.Printf("reference date %s is outside the challenge\n", onDate)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&onDate, "on", "", "reference date (YYYY-MM-DD) to mark the active milestone")
	return cmd
}
