package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/peterkuimelis/deckbuilder/internal/config"
	"github.com/peterkuimelis/deckbuilder/internal/game"
	"github.com/peterkuimelis/deckbuilder/internal/log"
	dbnet "github.com/peterkuimelis/deckbuilder/internal/net"
	"github.com/peterkuimelis/deckbuilder/internal/strategy"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	switch os.Args[1] {
	case "sim":
		err = runSim(ctx, os.Args[2:])
	case "host":
		err = runHost(ctx, os.Args[2:])
	case "join":
		err = runJoin(ctx, os.Args[2:])
	case "bots":
		fmt.Println(strings.Join(strategy.Names(), "\n"))
	default:
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  deckbuilder sim  [--config FILE] [--players A,B] [--preset NAME] [--seed N] [--games N] [--events]")
	fmt.Println("  deckbuilder host [--config FILE] [--name NAME] [--port P] [--bots A,B] [--preset NAME]")
	fmt.Println("  deckbuilder join [--name NAME] [--addr ADDR]")
	fmt.Println("  deckbuilder bots")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  sim     Play bots against each other and print the final scores")
	fmt.Println("  host    Start a game server and play as player 1")
	fmt.Println("  join    Connect to a game server and play as player 2")
	fmt.Println("  bots    List the bot strategies")
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// setup loads the configuration and builds the diagnostics logger.
func setup(path string) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	zlog, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return nil, nil, err
	}
	return cfg, zlog, nil
}

func runSim(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("sim", flag.ExitOnError)
	configFile := fs.String("config", "", "path to config file")
	players := fs.String("players", "", "comma-separated bot strategies, one per seat")
	preset := fs.String("preset", "", "kingdom preset name (from the presets file)")
	seed := fs.Int64("seed", 0, "random seed (0 = random)")
	games := fs.Int("games", 1, "number of matches to play")
	events := fs.Bool("events", false, "print the event log of every match")
	fs.Parse(args)

	cfg, zlog, err := setup(*configFile)
	if err != nil {
		return err
	}
	defer zlog.Sync()

	m := cfg.Match
	if v := splitList(*players); len(v) > 0 {
		m.Players = v
		m.Names = nil
	}
	if *preset != "" {
		m.Preset = *preset
	}
	if *seed != 0 {
		m.Seed = *seed
	}
	kingdom, sets, err := m.KingdomCards()
	if err != nil {
		return err
	}

	wins := make(map[string]int)
	for i := range max(*games, 1) {
		matchSeed := m.Seed
		if matchSeed != 0 {
			matchSeed += int64(i)
		}
		strategies := make([]game.Strategy, len(m.Players))
		for j, name := range m.Players {
			if strategies[j], err = strategy.New(name, matchSeed+int64(j)); err != nil {
				return err
			}
		}

		var logger log.EventLogger = log.NewMemoryLogger()
		if *events {
			logger = log.NewTextLogger(os.Stdout)
		} else if cfg.Logging.Events {
			logger = log.NewZapLogger(zlog.Named("events"))
		}

		g, err := game.NewGame(game.Config{
			Strategies:  strategies,
			Names:       m.Names,
			Kingdom:     kingdom,
			Sets:        sets,
			Seed:        matchSeed,
			FirstPlayer: m.FirstPlayer,
			MaxTurns:    m.MaxTurns,
			Logger:      logger,
			ZapLogger:   zlog,
		})
		if err != nil {
			return err
		}
		table, err := g.Run(ctx)
		if err != nil {
			return err
		}
		if *games <= 1 {
			fmt.Printf("Kingdom: %s\n", strings.Join(kingdomNames(g), ", "))
			fmt.Print(table.String())
			return nil
		}
		for _, w := range table.Winners() {
			wins[w.Name]++
		}
	}

	fmt.Printf("Wins over %d matches:\n", *games)
	for _, name := range sortedKeys(wins) {
		fmt.Printf("  %-24s %d\n", name, wins[name])
	}
	return nil
}

func kingdomNames(g *game.Game) []string {
	var names []string
	for _, t := range g.Kingdom() {
		names = append(names, t.Name)
	}
	return names
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func runHost(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("host", flag.ExitOnError)
	configFile := fs.String("config", "", "path to config file")
	name := fs.String("name", "host", "your player name")
	port := fs.Int("port", 0, "TCP port to listen on (default from config)")
	bots := fs.String("bots", "", "comma-separated bot strategies for extra seats")
	preset := fs.String("preset", "", "kingdom preset name (from the presets file)")
	fs.Parse(args)

	cfg, zlog, err := setup(*configFile)
	if err != nil {
		return err
	}
	defer zlog.Sync()

	if *port != 0 {
		cfg.Server.Port = *port
	}
	if v := splitList(*bots); len(v) > 0 {
		cfg.Server.Bots = v
	}
	if *preset != "" {
		cfg.Match.Preset = *preset
	}
	kingdom, sets, err := cfg.Match.KingdomCards()
	if err != nil {
		return err
	}

	srv := &dbnet.Server{
		Addr:        cfg.Server.Addr(),
		HostName:    *name,
		Bots:        cfg.Server.Bots,
		Kingdom:     kingdom,
		Sets:        sets,
		Seed:        cfg.Match.Seed,
		FirstPlayer: cfg.Match.FirstPlayer,
		MaxTurns:    cfg.Match.MaxTurns,
		Logger:      zlog,
	}
	return srv.Run(ctx)
}

func runJoin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("join", flag.ExitOnError)
	name := fs.String("name", "guest", "your player name")
	addr := fs.String("addr", "localhost:9000", "server address to connect to")
	fs.Parse(args)

	return dbnet.Connect(ctx, *addr, *name, os.Stdin, os.Stdout)
}
