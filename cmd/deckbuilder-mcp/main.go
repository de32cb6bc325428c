package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/peterkuimelis/deckbuilder/internal/config"
	dbmcp "github.com/peterkuimelis/deckbuilder/internal/mcp"
)

func main() {
	configFile := flag.String("config", "", "path to config file")
	flag.Parse()

	// stdout carries the MCP protocol, so diagnostics go to stderr.
	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	zlog, err := config.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer zlog.Sync()

	kingdom, sets, err := cfg.Match.KingdomCards()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	tools := dbmcp.NewTools(dbmcp.Options{
		Name:        "claude",
		Opponents:   cfg.MCP.Opponents,
		Kingdom:     kingdom,
		Sets:        sets,
		Seed:        cfg.Match.Seed,
		FirstPlayer: cfg.Match.FirstPlayer,
		MaxTurns:    cfg.Match.MaxTurns,
		Logger:      zlog,
	})
	defer tools.Close()

	s := server.NewMCPServer("deckbuilder", "1.0.0")
	tools.Register(s)

	zlog.Info("serving MCP on stdio", zap.Strings("opponents", cfg.MCP.Opponents))
	if err := server.ServeStdio(s); err != nil {
		zlog.Error("mcp server stopped", zap.Error(err))
		os.Exit(1)
	}
}
