package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pagemark/internal/api"
	"pagemark/internal/bookmarks"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var favouritedOnly bool
	var archivedOnly bool
	var statusFilter string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved bookmarks",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := bookmarks.ListFilter{OwnerID: ctx.ownerID()}
			if favouritedOnly {
				yes := true
				filter.Favourited = &yes
			}
			if archivedOnly {
				yes := true
				filter.Archived = &yes
			}
			if status := strings.TrimSpace(statusFilter); status != "" {
				filter.Status = bookmarks.TaggingStatus(status)
			}

			return ctx.withBookmarkService(func(svc *api.BookmarkService) error {
				views, err := svc.List(cmd.Context(), filter)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if asJSON {
					encoder := json.NewEncoder(out)
					encoder.SetIndent("", "  ")
					return encoder.Encode(views)
				}

				if len(views) == 0 {
					fmt.Fprintln(out, "No bookmarks found")
					return nil
				}
				fmt.Fprintln(out, renderBookmarkTable(views))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&favouritedOnly, "favourited", false, "Only favourited bookmarks")
	cmd.Flags().BoolVar(&archivedOnly, "archived", false, "Only archived bookmarks")
	cmd.Flags().StringVar(&statusFilter, "status", "", "Filter by tagging status (pending, success, failure)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit bookmarks as JSON")
	return cmd
}
