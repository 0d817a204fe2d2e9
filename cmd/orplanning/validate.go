package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"orplanning/internal/adapters/metrics"
	"orplanning/internal/adapters/snapshot"
	"orplanning/internal/domain"
	"orplanning/internal/repository/memory"
	"orplanning/internal/services"
	"orplanning/internal/supervision"

	"github.com/spf13/cobra"
)

// errViolations makes the command exit non-zero when a planning is invalid.
var errViolations = errors.New("planning has violations")

// snapshotService builds a supervision service over a loaded snapshot. Nothing
// is published or mailed from the command line.
func snapshotService(snap *domain.Snapshot, mode string, threshold int) (domain.SupervisionService, error) {
	compat, err := supervision.ParseCompatibilityMode(mode)
	if err != nil {
		return nil, err
	}
	repos := memory.FromSnapshot(snap)
	return services.NewSupervisionService(services.SupervisionConfig{
		RuleRepo:          repos.Rules,
		SectorRepo:        repos.Sectors,
		AssignmentRepo:    repos.Assignments,
		Recorder:          metrics.NewNoopRecorder(),
		CompatibilityMode: compat,
		HighLoadThreshold: threshold,
		Logger:            slog.New(slog.NewTextHandler(io.Discard, nil)),
	}), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newValidateCmd() *cobra.Command {
	var (
		snapshotFile string
		date         string
		mode         string
		threshold    int
	)
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the planning of a date stored in a snapshot file",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := snapshot.Load(snapshotFile)
			if err != nil {
				return err
			}
			if _, err := snapshot.Assignment(snap, date); err != nil {
				return fmt.Errorf("%s: %w", snapshotFile, err)
			}
			svc, err := snapshotService(snap, mode, threshold)
			if err != nil {
				return err
			}
			report, err := svc.ValidatePlanningForDate(context.Background(), date)
			if err != nil {
				return err
			}
			if err := writeJSON(cmd.OutOrStdout(), report); err != nil {
				return err
			}
			if !report.Valid() {
				return fmt.Errorf("%w: %d violation(s)", errViolations, len(report.Violations))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&snapshotFile, "snapshot", "", "YAML snapshot with sectors, rooms, rules and assignments")
	cmd.Flags().StringVar(&date, "date", "", "planning date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&mode, "mode", "", "compatibility mode: asymmetric or symmetric")
	cmd.Flags().IntVar(&threshold, "high-load", 3, "room count at which a high load warning is raised")
	_ = cmd.MarkFlagRequired("snapshot")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}
