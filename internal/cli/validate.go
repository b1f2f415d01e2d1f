package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"fitChallengeEngine/internal/calendar"
	"fitChallengeEngine/internal/snapshot"
)

// NewValidateCommand checks a snapshot file against the challenge contract.
func NewValidateCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [snapshot]",
		Short: "Validate a challenge snapshot file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := snapshotPath(args)
			if err != nil {
				return err
			}
			snap, err := snapshot.Load(path)
			if err != nil {
				return err
			}

			summary := validateSummary{
				Challenge:    snap.Challenge.Name,
				Model:        string(snap.Challenge.Model),
				Start:        calendar.DayKey(snap.Challenge.StartDate),
				End:          calendar.DayKey(snap.Challenge.EndDate),
				Participants: len(snap.Participants),
				Logs:         len(snap.Logs),
			}

			if opts.Format == "yaml" {
				return printYAML(cmd, summary)
			}

			cmd.Printf("Snapshot OK: %q (%s, %s..%s), %d participants, %d logs\n",
				summary.Challenge, summary.Model, summary.Start, summary.End,
				summary.Participants, summary.Logs)
			return nil
		},
	}
}

type validateSummary struct {
	Challenge    string `yaml:"challenge"`
	Model        string `yaml:"model"`
	Start        string `yaml:"start"`
	End          string `yaml:"end"`
	Participants int    `yaml:"participants"`
	Logs         int    `yaml:"logs"`
}

func printYAML(cmd *cobra.Command, v any) error {
	out, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to render output: %w", err)
	}
	cmd.Print(string(out))
	return nil
}
