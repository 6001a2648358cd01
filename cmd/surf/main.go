// Package main provides the surf browser-automation MCP server. It exposes
// browser operations (navigate, extract, click, fill, screenshot, execute
// script) as tools over stdio, backed by a single lazily-started browser
// session.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/entrhq/surf/pkg/browser"
	"github.com/entrhq/surf/pkg/config"
	"github.com/entrhq/surf/pkg/logging"
	"github.com/entrhq/surf/pkg/mcpserver"
	browsertools "github.com/entrhq/surf/pkg/tools/browser"
)

const version = "0.1.0"

func main() {
	showVersion := flag.Bool("version", false, "Show version and exit")
	configFile := flag.String("config", "", "Path to configuration file (YAML)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Surf - Browser Automation MCP Server\n\n")
		fmt.Fprintf(os.Stderr, "Usage: surf [options]\n\n")
		fmt.Fprintf(os.Stderr, "The server speaks the Model Context Protocol over stdio; run it from an\n")
		fmt.Fprintf(os.Stderr, "MCP client rather than directly. Diagnostics go to ~/.surf/logs.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		fmt.Printf("Surf v%s\n", version)
		return
	}

	if *configFile != "" {
		os.Setenv("SURF_CONFIG", *configFile)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "surf: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	log, err := logging.NewLogger("server")
	if err != nil {
		return fmt.Errorf("initializing logging: %w", err)
	}
	defer log.Close()

	log.Infof("starting surf v%s (engine=%s headless=%v)", version, cfg.BrowserType, cfg.Headless)

	sessionLog, err := logging.NewLogger("browser")
	if err != nil {
		return fmt.Errorf("initializing session logging: %w", err)
	}
	defer sessionLog.Close()

	manager := browser.NewManager(cfg, sessionLog)
	defer manager.Cleanup()

	policy, err := browsertools.NewURLPolicy(cfg.AllowedURLs, cfg.BlockedURLs)
	if err != nil {
		return fmt.Errorf("compiling URL policy: %w", err)
	}

	actionLog, err := logging.NewLogger("actions")
	if err != nil {
		return fmt.Errorf("initializing action logging: %w", err)
	}
	defer actionLog.Close()

	actions := browsertools.NewActions(manager, policy, actionLog)
	dispatcher := mcpserver.NewDispatcher(manager, actions, log)
	srv := mcpserver.NewServer(dispatcher, log)

	// Tear the browser down before the process exits on a signal. ServeStdio
	// returns on stdin close; signals bypass that path.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Infof("received %s, shutting down", sig)
		manager.Cleanup()
		log.Close()
		os.Exit(0)
	}()

	log.Infof("serving MCP over stdio (session log: %s)", log.LogPath())
	if err := mcpserver.Serve(srv, log); err != nil {
		return fmt.Errorf("stdio server: %w", err)
	}

	log.Infof("client disconnected, shutting down")
	return nil
}
