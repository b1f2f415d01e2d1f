package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fitChallengeEngine/internal/snapshot"
	"fitChallengeEngine/services"
)

// RootOptions holds global flags shared by all commands.
type RootOptions struct {
	Format string // "text" | "yaml"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "yaml"}

// NewRootCommand creates the root command for the engine CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "fitchallenge",
		Short: "Scoring and milestone engine for fitness challenges",
		Long:  "Computes milestones, window stats and ranked leaderboards from a challenge snapshot file.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|yaml)")

	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewMilestonesCommand(opts))
	cmd.AddCommand(NewStatsCommand(opts))
	cmd.AddCommand(NewLeaderboardCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// snapshotPath resolves the snapshot file from the command argument, falling
// back to the CHALLENGE_SNAPSHOT environment variable.
func snapshotPath(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if path := os.Getenv("CHALLENGE_SNAPSHOT"); path != "" {
		return path, nil
	}
	return "", fmt.Errorf("no snapshot file given and CHALLENGE_SNAPSHOT is not set")
}

// loadService builds a scoring service over the snapshot's data.
func loadService(args []string) (*snapshot.Snapshot, *services.ScoringService, error) {
	path, err := snapshotPath(args)
	if err != nil {
		return nil, nil, err
	}
	snap, err := snapshot.Load(path)
	if err != nil {
		return nil, nil, err
	}
	store := services.NewMemoryStoreFromSnapshot(snap)
	return snap, services.NewScoringService(store, store, store), nil
}
