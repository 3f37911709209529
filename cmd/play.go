package cmd

import (
	"context"
	"fmt"
	"net"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/periodica/internal/app"
	"github.com/abhisek/periodica/internal/audio"
	"github.com/abhisek/periodica/internal/clues"
	"github.com/abhisek/periodica/internal/debrief"
	"github.com/abhisek/periodica/internal/elements"
	"github.com/abhisek/periodica/internal/game"
	"github.com/abhisek/periodica/internal/kb"
	"github.com/abhisek/periodica/internal/llm"
	"github.com/abhisek/periodica/internal/metrics"
	"github.com/abhisek/periodica/internal/rng"
	"github.com/abhisek/periodica/internal/rooms"
	"github.com/abhisek/periodica/internal/screen"
	"github.com/abhisek/periodica/internal/session"
	"github.com/abhisek/periodica/internal/store"
	"github.com/abhisek/periodica/internal/timer"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the escape room",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGame(cmd)
	},
}

func init() {
	addPlayFlags(playCmd)
}

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().String("difficulty", "", "Preselect a tier: facile, intermedio or difficile")
	cmd.Flags().Bool("mute", false, "Start with sound off")
	cmd.Flags().Duration("clue-delay", 0, "Pause before a room's clues appear (default 1s)")
	cmd.Flags().String("metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9108")
	cmd.Flags().Bool("debrief", false, "Ask an LLM for the victory report")
	cmd.Flags().String("llm-provider", "", "LLM provider for the debrief: anthropic, openai, gemini, openrouter or mock")
	cmd.Flags().String("model", "", "Override the debrief model")
}

// applyPlayFlags layers explicitly set flags over the loaded config.
func applyPlayFlags(cmd *cobra.Command) error {
	f := cmd.Flags()
	if f.Changed("difficulty") {
		cfg.Difficulty, _ = f.GetString("difficulty")
	}
	if f.Changed("mute") {
		cfg.Muted, _ = f.GetBool("mute")
	}
	if f.Changed("clue-delay") {
		cfg.ClueDelay, _ = f.GetDuration("clue-delay")
	}
	if f.Changed("metrics-addr") {
		cfg.MetricsAddr, _ = f.GetString("metrics-addr")
	}
	if f.Changed("debrief") {
		cfg.Debrief, _ = f.GetBool("debrief")
	}
	if f.Changed("llm-provider") {
		cfg.LLM.Provider, _ = f.GetString("llm-provider")
		cfg.Debrief = true
	}
	if f.Changed("model") {
		cfg.LLM.Model, _ = f.GetString("model")
	}
	return cfg.Validate()
}

// checkData validates the compiled-in tables. A knowledge base gap only
// degrades clues, so it is logged rather than fatal.
func checkData() error {
	if err := elements.Validate(); err != nil {
		return fmt.Errorf("element catalog: %w", err)
	}
	if err := rooms.Validate(); err != nil {
		return fmt.Errorf("room templates: %w", err)
	}
	if err := kb.Validate(kb.Default(), elements.Full()); err != nil {
		logger.Warn("knowledge base incomplete", "error", err)
	}
	return nil
}

// runGame opens the journal, builds dependencies, and launches the TUI.
func runGame(cmd *cobra.Command) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if err := applyPlayFlags(cmd); err != nil {
		return err
	}
	if err := checkData(); err != nil {
		return err
	}

	dsn := store.MemoryDSN
	if cfg.Journal != "" {
		if err := store.EnsureDir(cfg.Journal); err != nil {
			return fmt.Errorf("create journal dir: %w", err)
		}
		dsn = cfg.Journal
	}
	st, err := store.Open(dsn)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()
	journal := st.EventRepo()

	sess := session.New()
	if cfg.Muted {
		sess.ToggleMute()
	}

	m := metrics.New()
	if cfg.MetricsAddr != "" {
		ln, err := net.Listen("tcp", cfg.MetricsAddr)
		if err != nil {
			return fmt.Errorf("metrics listener: %w", err)
		}
		logger.Info("serving metrics", "addr", ln.Addr().String())
		go func() {
			if err := m.Serve(ctx, ln); err != nil {
				logger.Error("metrics server stopped", "error", err)
			}
		}()
	}

	engine := clues.NewEngine(kb.Default(), rng.New(), clues.WithLogger(logger))
	deps := &screen.Deps{
		Session:    sess,
		Rooms:      rooms.NewGenerator(rng.New()),
		Clues:      engine,
		Shuffle:    rng.New(),
		ClueDelay:  cfg.ClueDelay,
		Sleeper:    timer.RealSleeper{},
		Audio:      audio.NewController(audio.Bell{W: os.Stdout}, logger),
		Journal:    journal,
		Metrics:    m,
		Logger:     logger,
		Difficulty: cfg.StartDifficulty(),
	}

	if cfg.Debrief {
		svc, err := newDebrief(ctx, journal)
		if err != nil {
			fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
			fmt.Fprintln(os.Stderr, "The victory report will use the built-in summary.")
		}
		deps.Debrief = svc
	}

	return app.Run(deps)
}

// llmConfig picks the provider: the configured one, else the
// PERIODICA_* environment, else the first vendor API key found.
func llmConfig() (llm.Config, error) {
	c := llm.ConfigFromEnv()
	if cfg.LLM.Provider != "" {
		c.Provider = cfg.LLM.Provider
	} else if c.Validate() != nil {
		if found, ok := llm.DiscoverConfig(); ok {
			c = found
		}
	}
	c = c.WithModel(cfg.LLM.Model)
	return c, c.Validate()
}

// newDebrief builds the debrief service. journal may be nil.
func newDebrief(ctx context.Context, journal store.EventRepo) (*debrief.Service, error) {
	c, err := llmConfig()
	if err != nil {
		return nil, err
	}
	provider, err := llm.NewProvider(ctx, c, journal, logger)
	if err != nil {
		return nil, err
	}
	return debrief.NewService(provider, debrief.DefaultConfig()), nil
}

// parseDifficulty accepts the Italian or English tier names.
func parseDifficulty(s string) (game.Difficulty, error) {
	if s == "" {
		return game.Easy, nil
	}
	d, ok := game.ParseDifficulty(s)
	if !ok {
		return 0, fmt.Errorf("unknown difficulty %q", s)
	}
	return d, nil
}
