package cmd

import (
	"strings"

	"vend-sync/feature/polling"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var pollSince string

// pollCmd prints a Vend listing.
var pollCmd = &cobra.Command{
	Use:   "poll <listing>",
	Short: "Print a Vend listing",
	Long: `Prints the objects of a Vend listing changed since --since.

Listings: customers, inventories, outlets, products, purchase_orders,
register_sales, tax_rates, vendors.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.close()

		svc := polling.NewService(rt.client, rt.logger)
		src, items, err := svc.Fetch(cmd.Context(), strings.TrimPrefix(args[0], "get_"), pollSince)
		if err != nil {
			return err
		}
		rt.logger.Info("Retrieved listing", zap.String("listing", src.Name), zap.Int("count", len(items)))
		return printJSON(cmd.OutOrStdout(), items)
	},
}

func init() {
	pollCmd.Flags().StringVar(&pollSince, "since", "", "Only list objects changed after this timestamp (e.g. 2024-01-01 00:00:00)")
	RootCmd.AddCommand(pollCmd)
}
