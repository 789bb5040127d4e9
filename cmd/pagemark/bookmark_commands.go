package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pagemark/internal/api"
	"pagemark/internal/bookmarks"
)

func newRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <bookmarkID>",
		Short: "Delete a bookmark and schedule index cleanup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			return ctx.withBookmarkService(func(svc *api.BookmarkService) error {
				if err := svc.Remove(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed bookmark %s\n", id)
				return nil
			})
		},
	}
}

func newRetagCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "retag <bookmarkID>",
		Short: "Queue a bookmark for fresh tag inference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			return ctx.withBookmarkService(func(svc *api.BookmarkService) error {
				if err := svc.Retag(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Bookmark %s queued for tagging\n", id)
				return nil
			})
		},
	}
}

func newFavouriteCommand(ctx *commandContext) *cobra.Command {
	var off bool

	cmd := &cobra.Command{
		Use:   "favourite <bookmarkID>",
		Short: "Mark a bookmark as favourited",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setBookmarkFlag(cmd, ctx, args[0], "favourited", !off, func(store *bookmarks.Store, id string, value bool) error {
				return store.SetFavourited(cmd.Context(), id, value)
			})
		},
	}

	cmd.Flags().BoolVar(&off, "off", false, "Clear the favourite flag instead")
	return cmd
}

func newArchiveCommand(ctx *commandContext) *cobra.Command {
	var off bool

	cmd := &cobra.Command{
		Use:   "archive <bookmarkID>",
		Short: "Archive a bookmark",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setBookmarkFlag(cmd, ctx, args[0], "archived", !off, func(store *bookmarks.Store, id string, value bool) error {
				return store.SetArchived(cmd.Context(), id, value)
			})
		},
	}

	cmd.Flags().BoolVar(&off, "off", false, "Unarchive instead")
	return cmd
}

func setBookmarkFlag(cmd *cobra.Command, ctx *commandContext, rawID, flagName string, value bool, update func(*bookmarks.Store, string, bool) error) error {
	id := strings.TrimSpace(rawID)
	return ctx.withBookmarks(func(store *bookmarks.Store) error {
		bookmark, err := store.GetByID(cmd.Context(), id)
		if err != nil {
			return err
		}
		if bookmark == nil {
			return fmt.Errorf("bookmark %s not found", id)
		}
		if err := update(store, id, value); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Bookmark %s %s: %s\n", id, flagName, yesNo(value))
		return nil
	})
}

func newTagsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List tags in the owner's namespace",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withBookmarks(func(store *bookmarks.Store) error {
				tags, err := store.ListTags(cmd.Context(), ctx.ownerID())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(tags) == 0 {
					fmt.Fprintln(out, "No tags yet")
					return nil
				}
				for _, tag := range tags {
					fmt.Fprintln(out, tag.Name)
				}
				return nil
			})
		},
	}
}
