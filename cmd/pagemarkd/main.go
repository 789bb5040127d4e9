// Command pagemarkd runs the pagemark background daemon: the enrichment and
// indexing workers plus the local HTTP API.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"pagemark/internal/config"
	"pagemark/internal/daemonrun"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default ~/.config/pagemark/config.toml)")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	development := flag.Bool("dev", false, "enable development logging")
	flag.Parse()

	cfg, _, _, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pagemarkd: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		fmt.Fprintf(os.Stderr, "pagemarkd: %v\n", err)
		os.Exit(1)
	}

	opts := daemonrun.Options{LogLevel: *logLevel, Development: *development}
	if err := daemonrun.Run(context.Background(), cfg, opts); err != nil {
		fmt.Fprintf(os.Stderr, "pagemarkd: %v\n", err)
		os.Exit(1)
	}
}
