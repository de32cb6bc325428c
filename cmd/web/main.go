package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/peterkuimelis/deckbuilder/internal/config"
	"github.com/peterkuimelis/deckbuilder/internal/web"
)

func main() {
	configFile := flag.String("config", "", "path to config file")
	port := flag.Int("port", 0, "HTTP port to listen on (default from config)")
	gameAddr := flag.String("game", "", "default game server address (default from config)")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Web.Port = *port
	}
	if *gameAddr != "" {
		cfg.Web.GameAddr = *gameAddr
	}
	zlog, err := config.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer zlog.Sync()

	srv, err := web.NewServer(web.Options{
		PresetsFile: cfg.Match.Presets,
		GameAddr:    cfg.Web.GameAddr,
		Logger:      zlog,
	})
	if err != nil {
		zlog.Fatal("create web server", zap.Error(err))
	}

	addr := fmt.Sprintf(":%d", cfg.Web.Port)
	zlog.Info("deckbuilder web UI listening", zap.String("url", fmt.Sprintf("http://localhost:%d", cfg.Web.Port)))
	if err := srv.ListenAndServe(addr); err != nil {
		zlog.Fatal("web server stopped", zap.Error(err))
	}
}
