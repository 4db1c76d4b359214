package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/precast-backend/internal/app"
	"github.com/heartmarshall/precast-backend/internal/domain"
)

// reportCmd prints a day's report text
var reportCmd = &cobra.Command{
	Use:   "report [YYYY-MM-DD]",
	Short: "Print the production report of a day",
	Long: `Print the stored report text of a day, ready to paste into WhatsApp.
Defaults to today.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date := domain.Today()
		if len(args) == 1 {
			d, err := domain.ParseDate(args[0])
			if err != nil {
				return err
			}
			date = d
		}

		return withServices(cmd, func(ctx context.Context, _ *env, svcs *app.Services) error {
			rec, err := svcs.Production.GetRecord(ctx, date)
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("no production recorded on %s", date.FormatLong())
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), rec.ReportText)
			return nil
		})
	},
}
