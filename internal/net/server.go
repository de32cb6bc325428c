package net

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"os"

	"go.uber.org/zap"

	"github.com/peterkuimelis/deckbuilder/internal/game"
	"github.com/peterkuimelis/deckbuilder/internal/log"
	"github.com/peterkuimelis/deckbuilder/internal/strategy"
)

// Server hosts a match between the local player, one TCP client and any
// number of bots.
type Server struct {
	Addr     string
	HostName string
	Bots     []string // strategy names for the extra seats

	Kingdom     []string
	Sets        []string
	Seed        int64
	FirstPlayer int
	MaxTurns    int

	Logger *zap.Logger
	In     io.Reader // host input, defaults to os.Stdin
	Out    io.Writer // host output, defaults to os.Stdout
}

// Run starts listening on s.Addr and serves one match.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	defer ln.Close()
	return s.Serve(ctx, ln)
}

// Serve waits for one client on ln, then runs the match. The host plays
// through a local REPL connected over an in-memory pipe.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	zlog := s.Logger
	if zlog == nil {
		zlog = zap.NewNop()
	}
	out := s.Out
	if out == nil {
		out = os.Stdout
	}
	in := s.In
	if in == nil {
		in = os.Stdin
	}

	fmt.Fprintf(out, "Waiting for opponent on %s...\n", ln.Addr())

	// Accept exactly one connection (the joiner)
	conn, err := ln.Accept()
	if err != nil {
		return fmt.Errorf("accept: %w", err)
	}
	defer conn.Close()

	var join ClientMessage
	if err := json.NewDecoder(conn).Decode(&join); err != nil {
		return fmt.Errorf("read join message: %w", err)
	}
	if join.Type != MsgJoin {
		return fmt.Errorf("expected join, got %q", join.Type)
	}
	joinerName := join.Name
	if joinerName == "" {
		joinerName = "guest"
	}
	hostName := s.HostName
	if hostName == "" {
		hostName = "host"
	}
	fmt.Fprintf(out, "%s connected from %s\n", joinerName, conn.RemoteAddr())
	zlog.Info("client joined", zap.String("name", joinerName), zap.Stringer("remote", conn.RemoteAddr()))

	hostConn, hostServerConn := net.Pipe()
	defer hostConn.Close()
	defer hostServerConn.Close()

	// The host REPL must be reading before dealing emits events.
	errCh := make(chan error, 2)
	go func() {
		errCh <- NewClient(hostConn, in, out).RunREPL(ctx)
	}()

	strategies := []game.Strategy{
		NewNetworkController(hostServerConn, hostName, zlog),
		NewNetworkController(conn, joinerName, zlog),
	}
	names := []string{hostName, joinerName}
	for i, bot := range s.Bots {
		st, err := strategy.New(bot, s.Seed+int64(i))
		if err != nil {
			return err
		}
		strategies = append(strategies, st)
		names = append(names, fmt.Sprintf("%s-%d", game.StrategyName(st), i+3))
	}

	g, err := game.NewGame(game.Config{
		Strategies:  strategies,
		Names:       names,
		Kingdom:     s.Kingdom,
		Sets:        s.Sets,
		Seed:        s.Seed,
		FirstPlayer: s.FirstPlayer,
		MaxTurns:    s.MaxTurns,
		Logger:      log.NewZapLogger(zlog.Named("events")),
		ZapLogger:   zlog,
	})
	if err != nil {
		return err
	}

	go func() {
		table, err := g.Run(ctx)
		if err != nil {
			errCh <- fmt.Errorf("match error: %w", err)
			return
		}
		zlog.Info("match result", zap.Strings("winners", table.WinnerNames()))
		errCh <- nil
	}()

	// Both finish on game_over; whichever fails first wins.
	for range 2 {
		if err := <-errCh; err != nil {
			return err
		}
	}
	return nil
}
