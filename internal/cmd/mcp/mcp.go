// Package mcp parses MCP command flags and wires the ledger behind the server.
package mcp

import (
	"context"
	"flag"
	"log"
	"sync"
	"time"

	"github.com/fracturedbytes/vitals/internal/googlefit"
	"github.com/fracturedbytes/vitals/internal/platform/config"
	"github.com/fracturedbytes/vitals/internal/platform/otel"
	"github.com/fracturedbytes/vitals/internal/services/ledger/storage/sqlite"
	"github.com/fracturedbytes/vitals/internal/services/ledger/tracker"
	"github.com/fracturedbytes/vitals/internal/services/mcp/service"
)

// Config holds MCP command configuration.
type Config struct {
	DBPath      string  `env:"VITALS_DB_PATH" envDefault:"vitals.db"`
	HTTPAddr    string  `env:"VITALS_MCP_HTTP_ADDR" envDefault:"localhost:8081"`
	Transport   string  `env:"VITALS_MCP_TRANSPORT" envDefault:"stdio"`
	CalorieGoal float64 `env:"VITALS_CALORIE_GOAL" envDefault:"2000"`
	WaterGoal   float64 `env:"VITALS_WATER_GOAL_LITERS" envDefault:"2.5"`
	PlanStance  string  `env:"VITALS_PLAN_STANCE" envDefault:"maintain"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database path")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP server address (for HTTP transport)")
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport type: stdio or http")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// envStepSource builds the Google Fit client lazily on first use and re-reads
// the GOOGLE_FIT_TOKEN credential on every call until construction succeeds,
// so a token exported after launch takes effect without a restart. Credential
// errors surface per call; the sync tool reports them as structured results.
type envStepSource struct {
	mu     sync.Mutex
	client *googlefit.Client
}

func (s *envStepSource) FetchSteps(ctx context.Context, start, end time.Time) (int64, error) {
	s.mu.Lock()
	if s.client == nil {
		client, err := googlefit.NewFromEnv(ctx)
		if err != nil {
			s.mu.Unlock()
			return 0, err
		}
		s.client = client
	}
	client := s.client
	s.mu.Unlock()
	return client.FetchSteps(ctx, start, end)
}

// Run starts the MCP server over the configured transport.
func Run(ctx context.Context, cfg Config) error {
	shutdown, err := otel.Setup(ctx, "mcp")
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			log.Printf("otel shutdown: %v", err)
		}
	}()

	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("close store: %v", err)
		}
	}()

	ledger := tracker.New(store, &envStepSource{}, tracker.Config{
		CalorieGoal:     cfg.CalorieGoal,
		WaterGoalLiters: cfg.WaterGoal,
		PlanStance:      cfg.PlanStance,
	})

	server, err := service.New(ledger)
	if err != nil {
		return err
	}
	return server.Run(ctx, service.Config{
		Transport: service.TransportKind(cfg.Transport),
		HTTPAddr:  cfg.HTTPAddr,
	})
}
