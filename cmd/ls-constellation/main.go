// Command ls-constellation is a terminal portfolio laid out as a zodiac
// constellation over an animated starfield.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/litescript/ls-constellation/internal/assist"
	"github.com/litescript/ls-constellation/internal/astro"
	"github.com/litescript/ls-constellation/internal/config"
	"github.com/litescript/ls-constellation/internal/guestbook"
	"github.com/litescript/ls-constellation/internal/logging"
	"github.com/litescript/ls-constellation/internal/portfolio"
	"github.com/litescript/ls-constellation/internal/starfield"
	"github.com/litescript/ls-constellation/internal/state"
	"github.com/litescript/ls-constellation/internal/ui"
	"github.com/litescript/ls-constellation/internal/version"
	"github.com/litescript/ls-constellation/internal/zodiac"
)

// app is the state shared by every command once flags are parsed.
type app struct {
	configPath string
	logLevel   string

	cfg     config.Config
	log     *logging.Logger
	content *portfolio.Content
	catalog *astro.Catalog
}

func main() {
	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	a := &app{}
	if err := newRootCmd(a).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "ls-constellation",
		Short:         "A portfolio written in the stars",
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd.Flags().Changed("log-level"))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runTUI(cmd.Context())
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to a YAML config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	root.AddCommand(
		newSignCmd(),
		newChartCmd(a),
		newStarfieldCmd(a),
		newAskCmd(a),
		newGuestbookCmd(a),
	)
	return root
}

// load reads configuration and portfolio content and sets up logging.
func (a *app) load(levelFlagSet bool) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if levelFlagSet {
		cfg.LogLevel = a.logLevel
	}
	a.cfg = cfg
	a.log = logging.New(logging.ParseLevel(cfg.LogLevel))

	if cfg.PortfolioPath != "" {
		content, err := portfolio.Load(cfg.PortfolioPath)
		if err != nil {
			return err
		}
		a.content = content
	} else {
		a.content = portfolio.Default()
	}
	a.catalog = astro.ZodiacCatalog()

	a.log.Debug("config loaded (file=%q, observer=%s)", a.configPath, cfg.Observer.Name)
	return nil
}

func stdoutFd() int { return int(os.Stdout.Fd()) }

func (a *app) observer() astro.Observer {
	return astro.Observer{
		Name:   a.cfg.Observer.Name,
		LatDeg: a.cfg.Observer.Lat,
		LonDeg: a.cfg.Observer.Lon,
	}
}

func (a *app) starfieldConfig() starfield.Config {
	return starfield.Config{
		StarCount:        a.cfg.Starfield.StarCount,
		ParallaxStrength: a.cfg.Starfield.ParallaxStrength,
		DriftSpeed:       a.cfg.Starfield.DriftSpeed,
	}
}

// responder prefers Gemini and always falls back to the keyword responder.
func (a *app) responder(ctx context.Context) assist.Responder {
	fallback := &assist.Fallback{
		Local: assist.NewLocal(a.content),
		Log:   a.log,
	}

	gen, err := assist.NewGenAIGenerator(ctx, a.cfg.Assistant.APIKey, a.cfg.Assistant.Model)
	switch {
	case errors.Is(err, assist.ErrNoGenerator):
		a.log.Debug("assistant: no API key, answering locally")
	case err != nil:
		a.log.Warn("assistant: %v", err)
	default:
		fallback.Primary = assist.NewGemini(gen, a.content, a.cfg.Assistant.Timeout)
	}
	return fallback
}

func (a *app) openGuestbook(ctx context.Context) (*guestbook.Book, error) {
	return guestbook.Open(ctx, a.cfg.Guestbook.DBPath, guestbook.WithLogger(a.log))
}

// runTUI runs the interactive interface until the user quits or ctx ends.
func (a *app) runTUI(ctx context.Context) error {
	// The TUI owns the terminal; logs go to a file.
	logFile, err := os.OpenFile(a.cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		a.log.SetOutput(io.Discard)
	} else {
		defer logFile.Close()
		a.log.SetOutput(logFile)
	}
	defer a.log.Sync()

	a.log.Info("ls-constellation %s starting", version.Version)

	store := state.NewStore(state.DefaultConfig())
	if a.cfg.Birthdate != "" {
		sign, fellBack := zodiac.SignOrDefault(a.cfg.Birthdate)
		if fellBack {
			a.log.Warn("could not read configured birthdate %q, defaulting to %s", a.cfg.Birthdate, sign)
		}
		store.CompleteIntro(sign)
	}

	local := assist.NewLocal(a.content)
	opts := ui.Options{
		Store:        store,
		Catalog:      a.catalog,
		Content:      a.content,
		Chat:         assist.NewConversation(a.responder(ctx), a.cfg.Assistant.HistoryLimit),
		Suggestions:  local.Suggestions(),
		Observer:     a.observer(),
		Starfield:    a.starfieldConfig(),
		CommentLimit: a.cfg.Guestbook.Limit,
		Log:          a.log,
	}

	book, err := a.openGuestbook(ctx)
	if err != nil {
		a.log.Error("guestbook: %v", err)
	} else {
		defer book.Close()
		opts.Comments = book
	}

	p := tea.NewProgram(ui.New(opts), tea.WithAltScreen())

	// Store changes are made on the program's own goroutine, so they are
	// forwarded asynchronously.
	unsubscribe := store.Subscribe(func(s state.Snapshot) {
		go p.Send(ui.StateMsg(s))
	})
	defer unsubscribe()

	if book != nil {
		unsubscribeBook := book.Subscribe(func(c guestbook.Comment) {
			p.Send(ui.CommentMsg(c))
		})
		defer unsubscribeBook()
	}

	go func() {
		<-ctx.Done()
		p.Quit()
	}()

	// Run TUI (blocks until quit)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run TUI: %w", err)
	}
	a.log.Info("ls-constellation exiting")
	return nil
}
