package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/kalambet/humanmode/internal/api"
	"github.com/kalambet/humanmode/internal/catalog"
	"github.com/kalambet/humanmode/internal/config"
	"github.com/kalambet/humanmode/internal/demo"
	"github.com/kalambet/humanmode/internal/profile"
	"github.com/kalambet/humanmode/internal/setup"
	"github.com/kalambet/humanmode/internal/storage"
	"github.com/kalambet/humanmode/internal/voice"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the humanmode server (foreground)",
	RunE: func(cmd *cobra.Command, args []string) error {
		withMCP, _ := cmd.Flags().GetBool("mcp")
		return runServer(withMCP)
	},
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running humanmode server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return stopServer()
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show server and setup status",
	RunE: func(cmd *cobra.Command, args []string) error {
		return showStatus(cmd.Context())
	},
}

func init() {
	startCmd.Flags().Bool("mcp", false, "also serve MCP over stdin/stdout")
}

func pidFilePath(dataDir string) string {
	return filepath.Join(dataDir, "humanmode.pid")
}

func writePIDFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())), 0o644)
}

func readPIDFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(string(data)))
}

func removePIDFile(path string) {
	os.Remove(path)
}

func setupLogging(cfg config.Config) {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()})))
}

// services is everything the HTTP and MCP layers share.
type services struct {
	profiles *profile.Manager
	flow     *setup.Flow
	demo     *demo.Service
}

func newServices(cfg config.Config, store profile.Store) services {
	profiles := profile.NewManager(store)
	return services{
		profiles: profiles,
		flow: setup.NewFlow(
			profiles,
			setup.NewRecorder(cfg.Voice.RecordingLimit),
			voice.NewAnalyzer(voice.GlobalRand, cfg.Voice.StageScale),
		),
		demo: demo.NewService(profiles, cfg.Demo.GenerateDelay),
	}
}

func runServer(withMCP bool) error {
	fmt.Fprintf(os.Stderr, "humanmode version %s\n", version)

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	setupLogging(cfg)

	if err := catalog.Validate(); err != nil {
		return fmt.Errorf("response catalog is incomplete: %w", err)
	}

	pidPath := pidFilePath(cfg.Storage.DataDir)
	healthURL := fmt.Sprintf("http://127.0.0.1:%d/health", cfg.Server.Port)
	healthClient := &http.Client{Timeout: 2 * time.Second}
	if resp, err := healthClient.Get(healthURL); err == nil {
		resp.Body.Close()
		if pid, pidErr := readPIDFile(pidPath); pidErr == nil {
			printWarning("humanmode is already running (PID %d)", pid)
			return fmt.Errorf("server already running (PID %d)", pid)
		}
		printWarning("humanmode is already running on port %d", cfg.Server.Port)
		return fmt.Errorf("server already running on port %d", cfg.Server.Port)
	}
	if err := writePIDFile(pidPath); err != nil {
		return fmt.Errorf("writing PID file: %w", err)
	}
	defer removePIDFile(pidPath)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := storage.OpenBackend(ctx, storage.BackendOptions{
		Kind:        cfg.Storage.Backend,
		DataDir:     cfg.Storage.DataDir,
		RedisURL:    cfg.Redis.URL,
		RedisPrefix: cfg.Redis.Prefix,
	})
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: closing storage: %v\n", err)
		}
	}()
	slog.Info("storage ready", "backend", cfg.Storage.Backend)
	if cfg.Storage.Backend == storage.BackendMemory {
		slog.Warn("memory backend: the profile is lost when the server stops")
	}
	if cfg.API.Token == "" {
		slog.Warn("no API token configured, HTTP API is unauthenticated")
	}

	svc := newServices(cfg, store)

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.Server.Port)
	srv := &http.Server{
		Addr: addr,
		Handler: api.NewAppHandler(api.AppDeps{
			Profiles: svc.profiles,
			Flow:     svc.flow,
			Demo:     svc.demo,
			Token:    cfg.API.Token,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		fmt.Fprintf(os.Stderr, "humanmode listening on %s\n", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		fmt.Fprintln(os.Stderr, "shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if withMCP {
		mcpSrv := api.NewMCPServer(api.MCPDeps{
			Profiles: svc.profiles,
			Demo:     svc.demo,
		})
		stdioSrv := server.NewStdioServer(mcpSrv)
		g.Go(func() error {
			if err := stdioSrv.Listen(gctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
				slog.Error("MCP stdio server error", "error", err)
			}
			return nil
		})
		slog.Info("MCP server started (stdio transport)")
	}

	return g.Wait()
}

func stopServer() error {
	cfg, err := config.Load()
	if err != nil {
		printError("could not load config: %v", err)
		return err
	}

	pidPath := pidFilePath(cfg.Storage.DataDir)
	pid, err := readPIDFile(pidPath)
	if err != nil {
		printError("humanmode is not running (no PID file)")
		return fmt.Errorf("not running: %w", err)
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		printError("could not find process %d", pid)
		return err
	}

	if err := process.Signal(syscall.SIGTERM); err != nil {
		printError("could not stop humanmode (PID %d): %v", pid, err)
		removePIDFile(pidPath)
		return err
	}

	printSuccess("Sent stop signal to humanmode (PID %d)", pid)
	return nil
}

func showStatus(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		printError("config error: %v", err)
		return nil
	}

	client, err := newAPIClient()
	if err != nil {
		return err
	}

	running := false
	resp, err := client.get(ctx, "/health")
	if err != nil {
		printStatus("Server", "stopped")
	} else {
		resp.Body.Close()
		if resp.StatusCode == http.StatusOK {
			running = true
			printStatus("Server", "running on port %d", cfg.Server.Port)
		} else {
			printStatus("Server", "error (HTTP %d)", resp.StatusCode)
		}
	}

	printStatus("Storage", "%s", cfg.Storage.Backend)
	if cfg.Storage.Backend == storage.BackendRedis {
		printStatus("Redis", "%s (prefix %q)", cfg.Redis.URL, cfg.Redis.Prefix)
	}
	printStatus("Data dir", "%s", cfg.Storage.DataDir)

	if running {
		resp, err := client.get(ctx, "/setup/status")
		if err != nil {
			return err
		}
		var st setup.Status
		if err := decodeJSON(resp, &st); err != nil {
			return err
		}
		printSetupStatus(os.Stderr, st)
	}
	return nil
}

func printSetupStatus(w io.Writer, st setup.Status) {
	fprintStatus(w, "Voice", "%s", doneLabel(st.VoiceAnalyzed))
	fprintStatus(w, "Skills", "%s", doneLabel(st.SkillsSaved))
	fprintStatus(w, "Context", "%s", doneLabel(st.ContextSaved))
	if st.Complete {
		fprintStatus(w, "Setup", "complete, try `humanmode demo`")
	} else {
		fprintStatus(w, "Setup", "continue with `humanmode setup %s`", st.NextStep)
	}
}

func doneLabel(ok bool) string {
	if ok {
		return colorize(colorGreen, "saved")
	}
	return colorize(colorDim, "not yet")
}
