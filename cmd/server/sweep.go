package main

import (
	"github.com/spf13/cobra"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Remove posts and comments whose parent is gone",
	Long: `Remove posts whose group no longer exists and comments whose post no
longer exists. Document stores have no foreign keys, so a write racing a
cascading delete can leave such children behind.`,
	Args: cobra.NoArgs,
	RunE: runSweep,
}

func runSweep(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx, nil)
	if err != nil {
		return err
	}
	defer a.Close()

	res, err := a.board.SweepOrphans(ctx)
	if err != nil {
		return err
	}

	cmd.Printf("swept %d posts and %d comments\n", res.Posts, res.Comments)
	return nil
}
