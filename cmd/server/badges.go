package main

import (
	"sort"

	"github.com/spf13/cobra"
)

var badgesCmd = &cobra.Command{
	Use:   "badges",
	Short: "Manage group badges",
}

var badgesReevaluateCmd = &cobra.Command{
	Use:   "reevaluate [group-id]",
	Short: "Re-run badge evaluation for one group or every group",
	Long: `Re-run badge evaluation. Badges are only ever added, so this picks up
time-based badges such as the one-year anniversary without any write.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBadgesReevaluate,
}

func runBadgesReevaluate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx, nil)
	if err != nil {
		return err
	}
	defer a.Close()

	if len(args) == 1 {
		granted, err := a.board.ReevaluateBadges(ctx, args[0])
		if err != nil {
			return err
		}
		cmd.Printf("%s: %d new badges %v\n", args[0], len(granted), granted)
		return nil
	}

	all, err := a.board.ReevaluateAllBadges(ctx)
	if err != nil {
		return err
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		cmd.Printf("%s: %d new badges %v\n", id, len(all[id]), all[id])
	}
	cmd.Printf("evaluated %d groups\n", len(ids))
	return nil
}
