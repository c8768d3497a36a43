package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mmynk/memoryboard/internal/seed"
)

var seedReset bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the sample groups",
	Long: `Load the five sample groups into the configured store.

With --reset every existing group is deleted first, together with its posts
and comments. Badges are evaluated for the new groups afterwards.`,
	RunE: runSeed,
}

func runSeed(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx, nil)
	if err != nil {
		return err
	}
	defer a.Close()

	report, err := seed.Load(ctx, a.store, a.gate, seed.Samples, seedReset)
	if err != nil {
		return err
	}

	for _, id := range report.Created {
		if _, err := a.board.ReevaluateBadges(ctx, id); err != nil {
			slog.Warn("Badge evaluation failed", "group_id", id, "error", err)
		}
	}

	slog.Info("Seed complete", "groups", len(report.Created))
	cmd.Printf("seeded %d groups\n", len(report.Created))
	return nil
}
