package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"go.uber.org/zap"

	"github.com/peterkuimelis/deckbuilder/internal/game"
	gamenet "github.com/peterkuimelis/deckbuilder/internal/net"
	"github.com/peterkuimelis/deckbuilder/internal/strategy"
)

//go:embed static
var staticFiles embed.FS

// CardInfo is the JSON representation of a card for the /api/cards endpoint.
type CardInfo struct {
	Name        string `json:"name"`
	Set         string `json:"set"`
	Cost        int    `json:"cost"`
	Types       string `json:"types"`
	Description string `json:"description"`
	Money       int    `json:"money,omitempty"`
	Actions     int    `json:"actions,omitempty"`
	Buys        int    `json:"buys,omitempty"`
	Draw        int    `json:"draw,omitempty"`
	Score       int    `json:"score,omitempty"`
}

func newCardInfo(t *game.CardType) CardInfo {
	return CardInfo{
		Name:        t.Name,
		Set:         t.Set,
		Cost:        t.Cost,
		Types:       t.Caps.String(),
		Description: t.Description,
		Money:       t.Money,
		Actions:     t.Actions,
		Buys:        t.Buys,
		Draw:        t.Draw,
		Score:       t.Score,
	}
}

// Options configures a Server.
type Options struct {
	PresetsFile string         // kingdom presets served by /api/kingdoms
	GameAddr    string         // default game server for /ws
	Registry    *game.Registry // nil = game.DefaultRegistry()
	Logger      *zap.Logger
}

// Server is the deckbuilder web UI server. Browsers talk to it over a
// websocket that it bridges to a TCP game server.
type Server struct {
	presetsFile string
	gameAddr    string
	registry    *game.Registry
	zlog        *zap.Logger
	mux         *http.ServeMux
}

// NewServer creates a new web server.
func NewServer(opts Options) (*Server, error) {
	reg := opts.Registry
	if reg == nil {
		reg = game.DefaultRegistry()
	}
	zlog := opts.Logger
	if zlog == nil {
		zlog = zap.NewNop()
	}
	s := &Server{
		presetsFile: opts.PresetsFile,
		gameAddr:    opts.GameAddr,
		registry:    reg,
		zlog:        zlog,
		mux:         http.NewServeMux(),
	}
	if err := s.setupRoutes(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Server) setupRoutes() error {
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		return fmt.Errorf("static files: %w", err)
	}

	// Serve index.html at root
	s.mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		f, err := staticFS.Open("index.html")
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		defer f.Close()
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		io.Copy(w, f)
	})

	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	s.mux.HandleFunc("GET /api/cards", s.handleCards)
	s.mux.HandleFunc("GET /api/kingdoms", s.handleKingdoms)
	s.mux.HandleFunc("GET /api/bots", s.handleBots)

	// WebSocket proxy
	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
	return nil
}

// Handler returns the HTTP handler serving every route.
func (s *Server) Handler() http.Handler { return s.mux }

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.zlog.Warn("write response", zap.Error(err))
	}
}

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	all := s.registry.All()
	cards := make([]CardInfo, 0, len(all))
	for _, t := range all {
		cards = append(cards, newCardInfo(t))
	}
	s.writeJSON(w, cards)
}

func (s *Server) handleKingdoms(w http.ResponseWriter, r *http.Request) {
	if s.presetsFile == "" {
		s.writeJSON(w, []KingdomInfo{})
		return
	}
	kingdoms, err := loadKingdoms(s.presetsFile, s.registry)
	if err != nil {
		s.zlog.Error("load kingdom presets", zap.String("file", s.presetsFile), zap.Error(err))
		http.Error(w, "could not load kingdom presets", http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, kingdoms)
}

func (s *Server) handleBots(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, strategy.Names())
}

// connectMessage is the first message a browser sends over /ws.
type connectMessage struct {
	Type string `json:"type"`
	Addr string `json:"addr"`
	Name string `json:"name"`
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	wsConn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin
	})
	if err != nil {
		s.zlog.Warn("websocket accept", zap.Error(err))
		return
	}
	defer wsConn.CloseNow()

	ctx := r.Context()

	// Read initial connect message from browser
	_, data, err := wsConn.Read(ctx)
	if err != nil {
		s.zlog.Debug("websocket read connect", zap.Error(err))
		return
	}
	var connect connectMessage
	if err := json.Unmarshal(data, &connect); err != nil || connect.Type != "connect" {
		wsConn.Close(websocket.StatusPolicyViolation, "expected connect message")
		return
	}
	addr := connect.Addr
	if addr == "" {
		addr = s.gameAddr
	}

	var d net.Dialer
	dialCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	tcpConn, err := d.DialContext(dialCtx, "tcp", addr)
	cancel()
	if err != nil {
		msg, _ := json.Marshal(gamenet.ServerMessage{
			Type:  gamenet.MsgError,
			Error: fmt.Sprintf("Could not connect to game server at %s: %v", addr, err),
		})
		wsConn.Write(ctx, websocket.MessageText, msg)
		wsConn.Close(websocket.StatusNormalClosure, "connection failed")
		return
	}
	defer tcpConn.Close()

	zlog := s.zlog.With(zap.String("game", addr), zap.String("name", connect.Name))
	if err := json.NewEncoder(tcpConn).Encode(gamenet.ClientMessage{Type: gamenet.MsgJoin, Name: connect.Name}); err != nil {
		zlog.Warn("send join", zap.Error(err))
		return
	}
	zlog.Info("bridging browser to game server")

	done := make(chan struct{})

	// TCP → WebSocket (server messages to browser)
	go func() {
		defer close(done)
		dec := json.NewDecoder(tcpConn)
		for {
			var msg json.RawMessage
			if err := dec.Decode(&msg); err != nil {
				if !errors.Is(err, io.EOF) {
					zlog.Debug("game server read", zap.Error(err))
				}
				return
			}
			if err := wsConn.Write(ctx, websocket.MessageText, msg); err != nil {
				zlog.Debug("websocket write", zap.Error(err))
				return
			}
		}
	}()

	// WebSocket → TCP (browser replies to the server)
	go func() {
		for {
			_, data, err := wsConn.Read(ctx)
			if err != nil {
				return
			}
			data = append(data, '\n')
			if _, err := tcpConn.Write(data); err != nil {
				zlog.Debug("game server write", zap.Error(err))
				return
			}
		}
	}()

	<-done
	wsConn.Close(websocket.StatusNormalClosure, "game ended")
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}
