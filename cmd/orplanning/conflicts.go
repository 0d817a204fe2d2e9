package main

import (
	"context"
	"fmt"

	"orplanning/internal/adapters/snapshot"

	"github.com/spf13/cobra"
)

func newConflictsCmd() *cobra.Command {
	var snapshotFile string
	cmd := &cobra.Command{
		Use:   "conflicts",
		Short: "List contradictions in the rule catalog of a snapshot file",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := snapshot.Load(snapshotFile)
			if err != nil {
				return err
			}
			svc, err := snapshotService(snap, "", 0)
			if err != nil {
				return err
			}
			conflicts, err := svc.DetectConflicts(context.Background())
			if err != nil {
				return err
			}
			if err := writeJSON(cmd.OutOrStdout(), conflicts); err != nil {
				return err
			}
			if len(conflicts) > 0 {
				return fmt.Errorf("rule catalog has %d conflict(s)", len(conflicts))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&snapshotFile, "snapshot", "", "YAML snapshot with sectors, rooms and rules")
	_ = cmd.MarkFlagRequired("snapshot")
	return cmd
}
