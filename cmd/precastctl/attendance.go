package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/precast-backend/internal/app"
	"github.com/heartmarshall/precast-backend/internal/domain"
)

// pruneAttendanceCmd deletes old attendance
var pruneAttendanceCmd = &cobra.Command{
	Use:   "prune-attendance <YYYY-MM-DD>",
	Short: "Delete attendance recorded before a date",
	Long: `Delete every attendance record dated strictly before the cutoff. Intended
to be run by an external scheduler.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cutoff, err := domain.ParseDate(args[0])
		if err != nil {
			return err
		}

		return withServices(cmd, func(ctx context.Context, _ *env, svcs *app.Services) error {
			n, err := svcs.Attendance.PruneBefore(ctx, cutoff)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d attendance records before %s\n", n, cutoff)
			return nil
		})
	},
}
