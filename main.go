package main

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/google/uuid"
)

func main() {
	cfg, err := LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatalf("galactica: %v", err)
	}
}

func run(ctx context.Context, cfg Config) error {
	runID := uuid.NewString()
	server := ""
	if cfg.Mode == ModeServer {
		server = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	}
	log.Printf("run %s: mode=%s server=%s", runID, cfg.Mode, server)

	var db *DB
	if cfg.DBPath != "" {
		var err error
		db, err = OpenDB(cfg.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := db.StartRun(runID, cfg.Mode, server); err != nil {
			log.Printf("flight recorder: start run: %v", err)
		}
		defer func() {
			if err := db.EndRun(runID); err != nil {
				log.Printf("flight recorder: end run: %v", err)
			}
		}()
	}

	var journal *Journal
	if cfg.JournalDir != "" {
		journal = NewJournal(cfg.JournalDir)
		defer journal.Close()
	}

	var sender Sender
	var inbox <-chan string
	if cfg.Mode == ModeServer {
		tr, err := DialTransport(cfg.Host, cfg.Port)
		if err != nil {
			return err
		}
		defer tr.Close()
		if journal != nil {
			tr.SetJournal(journal)
		}
		go tr.Run(ctx)
		log.Printf("transport: %s -> %s", tr.LocalAddr(), server)
		sender = tr
		inbox = tr.Inbox()
	}

	keys := NewKeyState()
	world := NewWorld(cfg.Tuning, cfg.Mode, sender, rand.New(rand.NewSource(time.Now().UnixNano())))

	var analytics *Analytics
	if db != nil {
		analytics = NewAnalytics(db, runID)
		world.SetRecorder(analytics)
	}

	var frames FramePublisher
	var httpServer *http.Server
	if cfg.BridgeAddr != "" {
		auth, err := NewAuth(db, cfg.BridgeSecret)
		if err != nil {
			return err
		}
		hub := NewHub(auth, keys)
		go hub.Run(ctx)
		frames = hub

		httpServer = &http.Server{Addr: cfg.BridgeAddr, Handler: SetupRoutes(hub)}
		go func() {
			log.Printf("bridge listening on %s", cfg.BridgeAddr)
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("bridge: %v", err)
			}
		}()
		logBridgeTokens(auth, cfg.BridgeAddr)
	}

	game := NewGame(world, inbox, keys, frames)
	err := game.Run(ctx)

	log.Println("Shutting down...")
	if httpServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		httpServer.Shutdown(shutdownCtx)
		cancel()
	}
	if analytics != nil {
		analytics.Stop()
		if s, err := db.Summarize(runID); err == nil {
			log.Printf("run %s: joins=%d respawns=%d game_overs=%d rocks=%d spice=%d fuel=%d",
				runID, s.Joins, s.Respawns, s.GameOvers, s.RocksDestroyed, s.SpiceCollected, s.FuelCollected)
		}
	}
	return err
}

func logBridgeTokens(auth *Auth, addr string) {
	host := addr
	if h, p, err := net.SplitHostPort(addr); err == nil && h == "" {
		host = net.JoinHostPort("localhost", p)
	}
	if tok, err := auth.IssueToken(RoleViewer); err == nil {
		log.Printf("viewer:     %s", ControllerURL(host, tok))
	}
	if tok, err := auth.IssueToken(RoleController); err == nil {
		log.Printf("controller: %s", ControllerURL(host, tok))
	}
	log.Printf("pair a phone controller at http://%s/qr", host)
}
