package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"pagemark/internal/logging"
	"pagemark/internal/search"
)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Full-text search over saved bookmarks",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.TrimSpace(strings.Join(args, " "))
			result, err := runSearch(cmd, ctx, query, limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")
				return encoder.Encode(result)
			}

			if result.Total == 0 {
				fmt.Fprintln(out, "No matches")
				return nil
			}
			fmt.Fprintf(out, "%d matches\n", result.Total)
			fmt.Fprintln(out, renderSearchHitTable(result.Hits))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of hits")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the result as JSON")
	return cmd
}

// runSearch prefers the daemon API so the query hits the live index. When the
// daemon is down the index is opened directly; bleve holds an exclusive lock,
// so both paths cannot be used at once.
func runSearch(cmd *cobra.Command, ctx *commandContext, query string, limit int) (*search.Result, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	if !cfg.Search.Enabled {
		return nil, errors.New("search is disabled in configuration")
	}

	values := url.Values{}
	values.Set("q", query)
	values.Set("owner", ctx.ownerID())
	if limit > 0 {
		values.Set("limit", strconv.Itoa(limit))
	}

	var result search.Result
	ok, err := ctx.fetchAPI(cmd.Context(), "/api/search?"+values.Encode(), &result)
	if err != nil {
		return nil, err
	}
	if ok {
		return &result, nil
	}

	index, err := search.Open(cfg.IndexDir(), logging.NewNop())
	if err != nil {
		return nil, fmt.Errorf("open search index: %w", err)
	}
	defer index.Close()

	direct, err := index.Search(cmd.Context(), search.Params{
		Query:   query,
		OwnerID: ctx.ownerID(),
		Limit:   limit,
	})
	if err != nil {
		return nil, err
	}
	return direct, nil
}
