package cmd

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	syncSetID string
	syncLimit int
)

// syncCmd runs one sync mode and exits.
var syncCmd = &cobra.Command{
	Use:   "sync [mode]",
	Short: "Run one sync mode",
	Long: `Runs one sync mode against the catalog and prints the result as JSON.

Modes: full, sets, single-set, prices, card-metadata, card-metadata-all.
Chunked modes process one chunk of one set per run; card-metadata-all keeps
going until every set completed a metadata pass. An interrupted run can be
restarted at any time.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		mode := ""
		if len(args) == 1 {
			mode = args[0]
		}

		a, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		svc := newService(a)
		res, err := svc.Run(ctx, mode, syncSetID, syncLimit)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if encErr := enc.Encode(res); encErr != nil {
			a.logger.Warn("Failed to print result", zap.Error(encErr))
		}
		return err
	},
}

func init() {
	syncCmd.Flags().StringVar(&syncSetID, "set", "", "Set id for single-set mode")
	syncCmd.Flags().IntVar(&syncLimit, "limit", 0, "Maximum number of sets for full mode (0 = all)")
	RootCmd.AddCommand(syncCmd)
}
