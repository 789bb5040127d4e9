package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"pagemark/internal/api"
	"pagemark/internal/bookmarks"
	"pagemark/internal/config"
	"pagemark/internal/queue"
)

// defaultOwnerID is the namespace used when the CLI runs without --owner.
const defaultOwnerID = "local"

const apiRequestTimeout = 5 * time.Second

type commandContext struct {
	configFlag *string
	ownerFlag  *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag, ownerFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		ownerFlag:  ownerFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) configValue() *config.Config {
	cfg, _ := c.ensureConfig()
	return cfg
}

func (c *commandContext) ownerID() string {
	if c.ownerFlag == nil || strings.TrimSpace(*c.ownerFlag) == "" {
		return defaultOwnerID
	}
	return strings.TrimSpace(*c.ownerFlag)
}

func (c *commandContext) withQueue(fn func(*queue.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := queue.Open(cfg)
	if err != nil {
		return fmt.Errorf("open queue store: %w", err)
	}
	defer store.Close()
	return fn(store)
}

func (c *commandContext) withBookmarkService(fn func(*api.BookmarkService) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := bookmarks.Open(cfg)
	if err != nil {
		return fmt.Errorf("open bookmark store: %w", err)
	}
	defer store.Close()

	jobs, err := queue.Open(cfg)
	if err != nil {
		return fmt.Errorf("open queue store: %w", err)
	}
	defer jobs.Close()

	return fn(api.NewBookmarkService(store, jobs))
}

func (c *commandContext) withBookmarks(fn func(*bookmarks.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := bookmarks.Open(cfg)
	if err != nil {
		return fmt.Errorf("open bookmark store: %w", err)
	}
	defer store.Close()
	return fn(store)
}

// fetchAPI issues a GET against the daemon HTTP API. It returns false without
// error when the daemon is not reachable so callers can fall back to direct
// store access.
func (c *commandContext) fetchAPI(ctx context.Context, path string, out any) (bool, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return false, err
	}
	bind := strings.TrimSpace(cfg.Paths.APIBind)
	if bind == "" {
		return false, nil
	}

	reqCtx, cancel := context.WithTimeout(ctx, apiRequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, "http://"+bind+path, nil)
	if err != nil {
		return false, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return false, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("daemon API returned %s for %s", resp.Status, path)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false, fmt.Errorf("decode daemon response: %w", err)
	}
	return true, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
