package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"vend-sync/core/reconcile"
	"vend-sync/feature/orders"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	pushFile     string
	pushTransfer bool
)

// consignmentCmd groups one-off consignment operations.
var consignmentCmd = &cobra.Command{
	Use:   "consignment",
	Short: "Reconcile or inspect a single Vend consignment",
}

var consignmentPushCmd = &cobra.Command{
	Use:   "push",
	Short: "Reconcile an order file with Vend",
	Long: `Reads a purchase or transfer order from a JSON file, reconciles it with
Vend and prints the resulting consignment.

Examples:
  consignment push --file po-1001.json
  consignment push --file to-2002.json --transfer`,
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(pushFile)
		if err != nil {
			return fmt.Errorf("failed to read order file: %w", err)
		}
		var order reconcile.Order
		if err := json.Unmarshal(raw, &order); err != nil {
			return fmt.Errorf("failed to decode order file: %w", err)
		}

		rt, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.close()

		svc := orders.NewService(rt.client, rt.transferRefs(), rt.archiver(), rt.logger)
		if pushTransfer {
			resp, skipped, err := svc.AddTransferOrder(cmd.Context(), &order)
			if err != nil {
				return err
			}
			if skipped {
				rt.logger.Info("Transfer order already received, nothing to do", zap.String("consignment_id", order.RemoteID()))
				return nil
			}
			return printJSON(cmd.OutOrStdout(), resp.Body)
		}

		resp, err := svc.AddPurchaseOrder(cmd.Context(), &order)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), resp.Body)
	},
}

var consignmentGetCmd = &cobra.Command{
	Use:   "get <consignment-id>",
	Short: "Print a consignment and its line items",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.close()

		svc := orders.NewService(rt.client, nil, nil, rt.logger)
		data, err := svc.GetConsignment(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), data)
	},
}

var consignmentArchivedCmd = &cobra.Command{
	Use:   "archived <key>",
	Short: "Print an archived consignment from object storage",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.close()

		if rt.archive == nil {
			return fmt.Errorf("storage is disabled, set STORAGE_ENABLED=true")
		}
		doc, err := rt.archive.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), doc)
	},
}

var consignmentHistoryCmd = &cobra.Command{
	Use:   "history <purchase_order|transfer_order> <consignment-id>",
	Short: "List the archived versions of a consignment",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.close()

		if rt.archive == nil {
			return fmt.Errorf("storage is disabled, set STORAGE_ENABLED=true")
		}
		keys, err := rt.archive.History(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), keys)
	},
}

func init() {
	consignmentPushCmd.Flags().StringVarP(&pushFile, "file", "f", "", "JSON file holding the order")
	consignmentPushCmd.Flags().BoolVar(&pushTransfer, "transfer", false, "Treat the order as a transfer order")
	_ = consignmentPushCmd.MarkFlagRequired("file")

	consignmentCmd.AddCommand(consignmentPushCmd, consignmentGetCmd, consignmentArchivedCmd, consignmentHistoryCmd)
	RootCmd.AddCommand(consignmentCmd)
}
