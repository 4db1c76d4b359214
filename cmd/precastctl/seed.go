package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/precast-backend/internal/app"
)

// seedCmd loads the initial catalog
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the default products and protected categories",
	Long: `Insert the factory's initial product list and the protected categories
("Diaristas" and "Produção Rodrigo"). Existing products are kept; safe to
run repeatedly.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(cmd, func(ctx context.Context, _ *env, svcs *app.Services) error {
			res, err := svcs.Catalog.SeedDefaults(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "products added: %d, categories seeded: %d\n",
				res.ProductsAdded, res.Categories)
			return nil
		})
	},
}
