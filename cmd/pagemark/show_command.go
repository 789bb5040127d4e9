package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pagemark/internal/api"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <bookmarkID>",
		Short: "Show a bookmark with its tags",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withBookmarkService(func(svc *api.BookmarkService) error {
				view, err := svc.Show(cmd.Context(), strings.TrimSpace(args[0]))
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if asJSON {
					encoder := json.NewEncoder(out)
					encoder.SetIndent("", "  ")
					return encoder.Encode(view)
				}

				fmt.Fprintf(out, "ID:          %s\n", view.ID)
				fmt.Fprintf(out, "Owner:       %s\n", view.OwnerID)
				fmt.Fprintf(out, "Kind:        %s\n", displayLabel(view.Kind))
				fmt.Fprintf(out, "Title:       %s\n", view.Title)
				if view.URL != "" {
					fmt.Fprintf(out, "URL:         %s\n", view.URL)
				}
				if view.Description != "" {
					fmt.Fprintf(out, "Description: %s\n", truncateText(view.Description, 120))
				}
				fmt.Fprintf(out, "Tagging:     %s\n", displayLabel(view.TaggingStatus))
				fmt.Fprintf(out, "Favourited:  %s\n", yesNo(view.Favourited))
				fmt.Fprintf(out, "Archived:    %s\n", yesNo(view.Archived))
				if len(view.Tags) > 0 {
					fmt.Fprintf(out, "Tags:        %s\n", strings.Join(view.Tags, ", "))
				}
				if view.CreatedAt != "" {
					fmt.Fprintf(out, "Created:     %s\n", view.CreatedAt)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the bookmark as JSON")
	return cmd
}
