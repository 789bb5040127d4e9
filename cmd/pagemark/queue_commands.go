package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"pagemark/internal/api"
	"pagemark/internal/queue"
)

func newQueueCommand(ctx *commandContext) *cobra.Command {
	queueCmd := &cobra.Command{
		Use:   "queue",
		Short: "Inspect and manage the enrichment queue",
	}

	queueCmd.AddCommand(newQueueStatusCommand(ctx))
	queueCmd.AddCommand(newQueueListCommand(ctx))
	queueCmd.AddCommand(newQueueShowCommand(ctx))
	queueCmd.AddCommand(newQueueHealthCommand(ctx))
	queueCmd.AddCommand(newQueueRetryCommand(ctx))
	queueCmd.AddCommand(newQueueClearCommand(ctx))
	queueCmd.AddCommand(newQueueResetCommand(ctx))

	return queueCmd
}

func (c *commandContext) withQueueService(fn func(*api.QueueService) error) error {
	return c.withQueue(func(store *queue.Store) error {
		return fn(api.NewQueueService(store))
	})
}

func newQueueStatusCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show queue status summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withQueueService(func(svc *api.QueueService) error {
				stats, err := svc.Stats(cmd.Context())
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if asJSON {
					return json.NewEncoder(out).Encode(stats)
				}
				if len(stats) == 0 {
					fmt.Fprintln(out, "Queue is empty")
					return nil
				}
				fmt.Fprintln(out, renderQueueStatusTable(stats))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit counts as JSON")
	return cmd
}

func newQueueListCommand(ctx *commandContext) *cobra.Command {
	var listStatuses []string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List queue jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			statuses := make([]queue.Status, 0, len(listStatuses))
			for _, raw := range listStatuses {
				status := queue.Status(raw)
				if !queue.ValidStatus(status) {
					return fmt.Errorf("invalid status %q", raw)
				}
				statuses = append(statuses, status)
			}

			return ctx.withQueueService(func(svc *api.QueueService) error {
				jobs, err := svc.List(cmd.Context(), statuses...)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if asJSON {
					if jobs == nil {
						jobs = []api.QueueJob{}
					}
					return json.NewEncoder(out).Encode(jobs)
				}
				if len(jobs) == 0 {
					fmt.Fprintln(out, "Queue is empty")
					return nil
				}
				fmt.Fprintln(out, renderQueueJobTable(jobs))
				return nil
			})
		},
	}

	cmd.Flags().StringSliceVarP(&listStatuses, "status", "s", nil, "Filter by job status (repeatable)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit jobs as JSON")
	return cmd
}

func newQueueShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <jobID>",
		Short: "Show one queue job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid job id %q", args[0])
			}

			return ctx.withQueueService(func(svc *api.QueueService) error {
				job, err := svc.Describe(cmd.Context(), id)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if job == nil {
					if asJSON {
						return json.NewEncoder(out).Encode(map[string]string{"error": "not_found"})
					}
					return fmt.Errorf("job %d not found", id)
				}
				if asJSON {
					encoder := json.NewEncoder(out)
					encoder.SetIndent("", "  ")
					return encoder.Encode(job)
				}

				fmt.Fprintf(out, "ID:       %d\n", job.ID)
				fmt.Fprintf(out, "Kind:     %s\n", displayLabel(job.Kind))
				fmt.Fprintf(out, "Bookmark: %s\n", job.BookmarkID)
				fmt.Fprintf(out, "Status:   %s\n", displayLabel(job.Status))
				fmt.Fprintf(out, "Attempts: %d\n", job.Attempts)
				if job.ErrorMessage != "" {
					fmt.Fprintf(out, "Error:    %s\n", job.ErrorMessage)
				}
				if job.CreatedAt != "" {
					fmt.Fprintf(out, "Created:  %s\n", job.CreatedAt)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the job as JSON")
	return cmd
}

func newQueueHealthCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Show queue health summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withQueueService(func(svc *api.QueueService) error {
				health, err := svc.Health(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if asJSON {
					return json.NewEncoder(out).Encode(health)
				}
				fmt.Fprintf(out, "Total: %d\nPending: %d\nProcessing: %d\nCompleted: %d\nFailed: %d\n",
					health.Total,
					health.Pending,
					health.Processing,
					health.Completed,
					health.Failed,
				)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the summary as JSON")
	return cmd
}

func newQueueRetryCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "retry [jobID...]",
		Short: "Retry failed queue jobs",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]int64, 0, len(args))
			for _, arg := range args {
				id, err := strconv.ParseInt(arg, 10, 64)
				if err != nil {
					return fmt.Errorf("invalid job id %q", arg)
				}
				ids = append(ids, id)
			}

			return ctx.withQueueService(func(svc *api.QueueService) error {
				retried, err := svc.Retry(cmd.Context(), ids...)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Retried %d failed jobs\n", retried)
				return nil
			})
		},
	}
}

func newQueueClearCommand(ctx *commandContext) *cobra.Command {
	var clearCompleted bool
	var clearFailed bool
	var clearAll bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove queue jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			selected := 0
			for _, flag := range []bool{clearCompleted, clearFailed, clearAll} {
				if flag {
					selected++
				}
			}
			if selected != 1 {
				return errors.New("specify exactly one of --completed, --failed, or --all")
			}

			return ctx.withQueueService(func(svc *api.QueueService) error {
				out := cmd.OutOrStdout()
				switch {
				case clearCompleted:
					removed, err := svc.ClearCompleted(cmd.Context())
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "Cleared %d completed jobs\n", removed)
				case clearFailed:
					removed, err := svc.ClearFailed(cmd.Context())
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "Cleared %d failed jobs\n", removed)
				default:
					removed, err := svc.ClearAll(cmd.Context())
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "Cleared %d queue jobs\n", removed)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&clearCompleted, "completed", false, "Remove only completed jobs")
	cmd.Flags().BoolVar(&clearFailed, "failed", false, "Remove only failed jobs")
	cmd.Flags().BoolVar(&clearAll, "all", false, "Remove every job")
	return cmd
}

func newQueueResetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "reset-stuck",
		Short: "Return in-flight jobs to pending",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withQueue(func(store *queue.Store) error {
				updated, err := store.ResetStuckProcessing(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Reset %d jobs\n", updated)
				return nil
			})
		},
	}
}
