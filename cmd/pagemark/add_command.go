package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pagemark/internal/api"
	"pagemark/internal/bookmarks"
)

func newAddCommand(ctx *commandContext) *cobra.Command {
	var title string
	var description string
	var content string
	var textBody string

	cmd := &cobra.Command{
		Use:   "add [url]",
		Short: "Save a link or text snippet and queue it for tagging",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url := ""
			if len(args) > 0 {
				url = strings.TrimSpace(args[0])
			}
			text := strings.TrimSpace(textBody)

			if url == "" && text == "" {
				return errors.New("provide a URL or --text")
			}
			if url != "" && text != "" {
				return errors.New("provide either a URL or --text, not both")
			}

			return ctx.withBookmarkService(func(svc *api.BookmarkService) error {
				var view api.BookmarkView
				var err error
				if url != "" {
					view, err = svc.AddLink(cmd.Context(), bookmarks.NewLinkParams{
						OwnerID:     ctx.ownerID(),
						URL:         url,
						Title:       title,
						Description: description,
						Content:     content,
					})
				} else {
					view, err = svc.AddText(cmd.Context(), bookmarks.NewTextParams{
						OwnerID: ctx.ownerID(),
						Text:    text,
					})
				}
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Saved %s bookmark %s\n", view.Kind, view.ID)
				fmt.Fprintln(out, "Tagging queued; run `pagemark show` once the daemon has processed it")
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Page title for link bookmarks")
	cmd.Flags().StringVar(&description, "description", "", "Page description for link bookmarks")
	cmd.Flags().StringVar(&content, "content", "", "Extracted page content for link bookmarks")
	cmd.Flags().StringVar(&textBody, "text", "", "Save a free-form text snippet instead of a link")
	return cmd
}
