package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/nstehr/striker/striker-core/agent"
	"github.com/nstehr/striker/striker-core/config"
	"github.com/nstehr/striker/striker-core/ipc"
	"github.com/nstehr/striker/striker-core/play"
	"github.com/nstehr/striker/striker-core/rules"
)

const banner = `
███████╗████████╗██████╗ ██╗██╗  ██╗███████╗██████╗
██╔════╝╚══██╔══╝██╔══██╗██║██║ ██╔╝██╔════╝██╔══██╗
███████╗   ██║   ██████╔╝██║█████╔╝ █████╗  ██████╔╝
╚════██║   ██║   ██╔══██╗██║██╔═██╗ ██╔══╝  ██╔══██╗
███████║   ██║   ██║  ██║██║██║  ██╗███████╗██║  ██║
╚══════╝   ╚═╝   ╚═╝  ╚═╝╚═╝╚═╝  ╚═╝╚══════╝╚═╝  ╚═╝

Pass-Driven Robot Soccer Intelligence`

var knownPlays = []string{play.NameHalt, play.NameFreeKick, play.NameKeepAway}

func main() {
	configPath := flag.String("config", "striker.yaml", "path to the YAML tuning file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	fmt.Println(banner)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *configPath, cfg); err != nil {
		slog.Error("striker stopped", "error", err)
		os.Exit(1)
	}
	slog.Info("shutting down")
}

func run(ctx context.Context, configPath string, cfg config.Config) error {
	slog.Info("starting striker",
		"config", configPath,
		"seed", cfg.Seed,
		"pitch_division", cfg.PitchDivision,
	)

	playRules, err := rules.FromConfig(cfg.Plays, knownPlays)
	if err != nil {
		return fmt.Errorf("play rules: %w", err)
	}
	engine, err := rules.NewEngine(playRules, cfg.Dribble.LoseBallControlThreshold)
	if err != nil {
		return fmt.Errorf("rule engine: %w", err)
	}
	slog.Info("play rules loaded", "rules", engine.Rules())

	// Unix sockets leave behind a file on unclean shutdown; remove it so we can rebind.
	if err := os.RemoveAll(cfg.SocketPath); err != nil {
		return fmt.Errorf("cleaning up socket %s: %w", cfg.SocketPath, err)
	}

	listener, err := net.Listen("unix", cfg.SocketPath)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", cfg.SocketPath, err)
	}
	defer os.Remove(cfg.SocketPath)

	slog.Info("listening on domain socket", "path", cfg.SocketPath)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		<-gctx.Done()
		return listener.Close()
	})

	g.Go(func() error {
		for {
			conn, err := listener.Accept()
			if err != nil {
				if gctx.Err() != nil || errors.Is(err, net.ErrClosed) {
					return nil
				}
				slog.Error("failed to accept connection", "error", err)
				continue
			}
			slog.Info("new connection accepted")
			g.Go(func() error {
				handleConn(gctx, conn, cfg, engine)
				return nil
			})
		}
	})

	g.Go(func() error {
		reloadRules(gctx, configPath, engine)
		return nil
	})

	return g.Wait()
}

// reloadRules swaps in the play rules from the config file on SIGHUP. Tuning
// values are read once at startup and are not reloaded.
func reloadRules(ctx context.Context, configPath string, engine *rules.Engine) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
		}

		cfg, err := config.Load(configPath)
		if err != nil {
			slog.Error("reload failed, keeping current rules", "error", err)
			continue
		}
		playRules, err := rules.FromConfig(cfg.Plays, knownPlays)
		if err != nil {
			slog.Error("reload failed, keeping current rules", "error", err)
			continue
		}
		if err := engine.Swap(playRules); err != nil {
			slog.Error("reload failed, keeping current rules", "error", err)
			continue
		}
		slog.Info("play rules reloaded", "rules", engine.Rules())
	}
}

func handleConn(ctx context.Context, conn net.Conn, cfg config.Config, engine *rules.Engine) {
	c := ipc.NewConnection(conn, nil)
	a := agent.New(c, cfg, engine)
	c.RegisterHandler(ipc.TypeHello, a.HandleHello)
	c.RegisterHandler(ipc.TypeWorld, a.HandleWorld)
	c.ReadLoop(ctx)
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
