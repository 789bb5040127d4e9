package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pagemark/internal/api"
	"pagemark/internal/queue"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show daemon and queue status",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, live, err := gatherStatus(cmd, ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")
				return encoder.Encode(status)
			}

			for _, line := range renderStatusReport(status, live, shouldColorize(out)) {
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the status as JSON")
	return cmd
}

// gatherStatus asks the daemon first and falls back to reading the queue
// database directly when the daemon is unreachable.
func gatherStatus(cmd *cobra.Command, ctx *commandContext) (api.DaemonStatus, bool, error) {
	var status api.DaemonStatus
	ok, err := ctx.fetchAPI(cmd.Context(), "/api/status", &status)
	if err != nil {
		return api.DaemonStatus{}, false, err
	}
	if ok {
		return status, status.Running, nil
	}

	cfg, err := ctx.ensureConfig()
	if err != nil {
		return api.DaemonStatus{}, false, err
	}
	status = api.DaemonStatus{
		Running:      false,
		DatabasePath: cfg.DatabasePath(),
		QueueDBPath:  cfg.QueuePath(),
		LockFilePath: strings.TrimSpace(cfg.Paths.LockFile),
	}
	err = ctx.withQueue(func(store *queue.Store) error {
		health, err := store.Health(cmd.Context())
		if err != nil {
			return err
		}
		status.Queue = api.FromHealth(health)
		return nil
	})
	if err != nil {
		return api.DaemonStatus{}, false, err
	}
	return status, false, nil
}
