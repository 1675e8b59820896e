package cmd

import (
	"encoding/json"
	"os"

	"catalog-sync/feature/catalog"

	"github.com/spf13/cobra"
)

// statusCmd prints the sync status overview.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show last sync runs and per-set progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		st, err := newService(a).Status(cmd.Context())
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(st)
	},
}

func newService(a *app) *catalog.Service {
	return catalog.NewService(a.orchestrator, a.logger)
}

func init() {
	RootCmd.AddCommand(statusCmd)
}
