// Command motortrust is a terminal consumer of the MotorTrust client
// SDK: it logs in, inspects the session and renders a small dashboard.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/motortrust/motortrust-go/internal/api"
	"github.com/motortrust/motortrust-go/internal/config"
	"github.com/motortrust/motortrust-go/internal/domain"
	"github.com/motortrust/motortrust-go/internal/infra/observability"
	"github.com/motortrust/motortrust-go/internal/infra/resilience"
	"github.com/motortrust/motortrust-go/internal/session"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	// --- Load .env file (for local development) ---
	_ = config.LoadDotEnv(".env")

	// --- Config ---
	cfg := config.Load()

	// --- Logger ---
	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	// --- Tracing (opt-in for a CLI) ---
	if cfg.TracingEnabled {
		shutdown, err := observability.InitTracer(cfg.OTLPEndpoint, "motortrust-cli")
		if err != nil {
			logger.Fatal("failed to init tracer", zap.Error(err))
		}
		defer shutdown(context.Background())
	}

	// --- Metrics ---
	metrics := observability.NewMetrics()

	// --- Session store ---
	sessionPath := cfg.SessionPath
	if sessionPath == "" {
		var err error
		if sessionPath, err = session.DefaultSessionPath(); err != nil {
			logger.Fatal("failed to resolve session path", zap.Error(err))
		}
	}
	store := session.NewFileStore(sessionPath)

	// --- Client ---
	client := api.NewClient(
		&http.Client{Timeout: cfg.HTTPTimeout},
		cfg.APIBaseURL,
		store,
		metrics,
		logger,
	)

	logger.Debug("configuration loaded",
		zap.String("api_base_url", cfg.APIBaseURL),
		zap.Duration("http_timeout", cfg.HTTPTimeout),
		zap.String("session_path", sessionPath),
	)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx := context.Background()
	var err error

	switch os.Args[1] {
	case "login":
		err = runLogin(ctx, client, os.Args[2:])
	case "logout":
		client.Logout(ctx)
		fmt.Println("logged out")
	case "whoami":
		err = runWhoami(ctx, client)
	case "vehicles":
		err = runVehicles(ctx, client)
	case "dashboard":
		err = runDashboard(ctx, client, cfg, metrics)
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		logger.Error("command failed", zap.String("command", os.Args[1]), zap.Error(err))
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: motortrust <command>

commands:
  login -email <email> -password <password>
  logout
  whoami
  vehicles
  dashboard`)
}

func runLogin(ctx context.Context, client *api.Client, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	fs.Parse(args)

	res, err := client.Login(ctx, domain.LoginRequest{Email: *email, Password: *password})
	if err != nil {
		return err
	}
	fmt.Printf("logged in as %s (%s)\n", res.User.Name, res.User.Role)
	return nil
}

func runWhoami(ctx context.Context, client *api.Client) error {
	user, err := client.CurrentUser(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s <%s> role=%s\n", user.Name, user.Email, user.Role)
	return nil
}

func runVehicles(ctx context.Context, client *api.Client) error {
	vehicles, err := client.Vehicles(ctx)
	if err != nil {
		return err
	}
	if len(vehicles) == 0 {
		fmt.Println("no vehicles yet")
		return nil
	}
	for _, v := range vehicles {
		primary := ""
		if v.IsPrimary {
			primary = " [primary]"
		}
		fmt.Printf("#%d %d %s %s%s — %d repairs\n", v.ID, v.Year, v.Make, v.Model, primary, v.RepairCount)
	}
	return nil
}

// runDashboard fans out the independent reads and applies the caller's
// partial-failure policy: a failed read renders as empty, it does not
// sink the whole dashboard.
func runDashboard(ctx context.Context, client *api.Client, cfg *config.Config, metrics *observability.Metrics) error {
	if !session.IsAuthenticated(client.Store()) {
		return domain.ErrNoSession
	}

	retryCfg := resilience.Config{
		MaxRetries:     cfg.MaxRetries,
		InitialBackoff: cfg.InitialBackoff,
	}

	var (
		vehicles []domain.Vehicle
		stats    *domain.RepairStats
		leads    []domain.RepairLead

		vehiclesErr, statsErr, leadsErr error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		vehicles, vehiclesErr = resilience.Do(gctx, retryCfg, nil, client.Vehicles)
		return nil
	})
	g.Go(func() error {
		stats, statsErr = resilience.Do(gctx, retryCfg, nil, func(ctx context.Context) (*domain.RepairStats, error) {
			return client.RepairStats(ctx, domain.RepairFilter{})
		})
		return nil
	})
	g.Go(func() error {
		leads, leadsErr = resilience.Do(gctx, retryCfg, nil, client.MyLeads)
		return nil
	})
	g.Wait()

	fmt.Printf("vehicles: %d", len(vehicles))
	if vehiclesErr != nil {
		fmt.Printf(" (fetch failed: %v)", vehiclesErr)
	}
	fmt.Println()

	if stats != nil {
		fmt.Printf("repairs: %d, total spent: %s\n", stats.TotalRepairs, stats.TotalCost)
	} else if statsErr != nil {
		fmt.Printf("repairs: unavailable (%v)\n", statsErr)
	}

	fmt.Printf("open leads: %d", len(leads))
	if leadsErr != nil {
		fmt.Printf(" (fetch failed: %v)", leadsErr)
	}
	fmt.Println()

	snap := metrics.GetSnapshot([]string{"vehicles", "repairs", "leads"})
	fmt.Printf("requests: %.0f, rejected: %.0f, transport errors: %.0f\n",
		snap.Requests, snap.Rejected, snap.TransportErrors)
	return nil
}
