// Package main implements the MCP server for the tasks tracker.
//
// The server exposes the task actions as tools over stdio JSON-RPC
// (Model Context Protocol), backed by the same SQLite file and
// configuration as the tasks command.
package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/JamesPrial/tasks/internal/config"
	"github.com/JamesPrial/tasks/internal/logging"
	"github.com/JamesPrial/tasks/internal/mcpserver"
	"github.com/JamesPrial/tasks/internal/storage"
)

// version is set at build time.
var version = "dev"

func run() int {
	workDir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	cfg, err := config.Load(workDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	logger := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	store, err := storage.NewTaskStore(cfg)
	if err != nil {
		logger.Error("failed to configure storage", "err", err)
		return 1
	}

	srv, err := mcpserver.NewServer(store, logger, version)
	if err != nil {
		logger.Error("failed to create MCP server", "err", err)
		return 1
	}

	logger.Info("serving on stdio", "db", cfg.DBPath)
	if err := server.ServeStdio(srv, server.WithErrorLogger(logging.Standard(logger))); err != nil {
		logger.Error("server error", "err", err)
		return 1
	}

	return 0
}

func main() {
	os.Exit(run())
}
