package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"patternflow/cmd/patternflow/browser"
	"patternflow/cmd/patternflow/ui"
	"patternflow/internal/catalog"
	"patternflow/internal/config"
	"patternflow/internal/logging"
	"patternflow/internal/navigation"
	"patternflow/internal/ux"
)

var (
	// Global flags
	configPath  string
	themeFlag   string
	langFlag    string
	patternFlag string
	verbose     bool

	// Effective configuration after file, env and flag overrides
	cfg *config.Config

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "patternflow",
	Short: "PatternFlow - browse the classic design patterns from your terminal",
	Long: `PatternFlow is a reference browser for the 23 Gang of Four design patterns.

Each pattern comes with a description, a class diagram, its participants and
code samples in Python, JavaScript and Java.

Run without arguments to start the interactive browser.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return err
		}
		if err := logging.Initialize(cfg.LoggingOptions()); err != nil {
			return fmt.Errorf("failed to initialize logging: %w", err)
		}

		// The interactive browser owns the terminal; only file logging.
		if cmd == cmd.Root() {
			logger = zap.NewNop()
			return nil
		}

		zc := zap.NewProductionConfig()
		zc.Encoding = "console"
		zc.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		logging.CloseAll()
	},
	RunE: runBrowser,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: "+config.DefaultPath()+")")
	rootCmd.PersistentFlags().StringVar(&themeFlag, "theme", "", "Theme: auto, light or dark")
	rootCmd.PersistentFlags().StringVar(&langFlag, "lang", "", "Initial code language")
	rootCmd.PersistentFlags().StringVar(&patternFlag, "pattern", "", "Initial pattern id")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	listCmd.Flags().StringVar(&listCategory, "category", "", "Only list one category")

	showCmd.Flags().StringVar(&showSection, "section", "all", "Section: header, diagram, roles, code or all")
	showCmd.Flags().BoolVar(&showRawDiagram, "raw-diagram", false, "Print the Mermaid source instead of drawing it")
	showCmd.Flags().BoolVar(&showColor, "color", false, "Highlight code with ANSI colours")

	siteCmd.Flags().StringVarP(&siteOutput, "output", "o", "", "Output directory (default: site.output_dir)")

	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(siteCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func resolvedConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return config.DefaultPath()
}

// loadConfig reads the config file and applies the global flag overrides.
func loadConfig() error {
	c, err := config.Load(resolvedConfigPath())
	if err != nil {
		return err
	}
	if themeFlag != "" {
		c.UI.Theme = themeFlag
	}
	if langFlag != "" {
		c.UI.DefaultLanguage = langFlag
	}
	if patternFlag != "" {
		c.UI.DefaultPattern = patternFlag
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	cfg = c
	return nil
}

func loadCatalog() (*catalog.Catalog, *catalog.Index, error) {
	cat, err := catalog.Default()
	if err != nil {
		return nil, nil, fmt.Errorf("loading catalog: %w", err)
	}
	logging.Catalog("Loaded %d patterns", cat.Len())
	return cat, catalog.NewIndex(cat), nil
}

// newController starts at the configured pattern and language. Explicit
// settings win over the remembered selection in prefs, which may be nil.
func newController(cat *catalog.Catalog, idx *catalog.Index, prefs *ux.PreferencesManager) *navigation.Controller {
	opts := navigation.Options{InitialID: cfg.UI.DefaultPattern}
	if cfg.UI.DefaultLanguage != "" {
		if lang, err := catalog.ParseLanguage(cfg.UI.DefaultLanguage); err == nil {
			opts.InitialLanguage = lang
		}
	}
	if prefs != nil {
		id, lang := prefs.Resume(cat)
		if opts.InitialID == "" {
			opts.InitialID = id
		}
		if opts.InitialLanguage == "" {
			opts.InitialLanguage = lang
		}
	}
	return navigation.NewControllerWithOptions(cat, idx, opts)
}

// loadPreferences returns nil when resuming is disabled or the file is unreadable.
func loadPreferences() *ux.PreferencesManager {
	if !cfg.UI.Resume {
		return nil
	}
	prefs := ux.NewPreferencesManager(config.DefaultStateDir())
	if err := prefs.Load(); err != nil {
		logging.Boot("Ignoring preferences at %s: %v", prefs.Path(), err)
		return nil
	}
	return prefs
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}

// runBrowser starts the interactive browser
func runBrowser(cmd *cobra.Command, args []string) error {
	cat, idx, err := loadCatalog()
	if err != nil {
		return err
	}
	prefs := loadPreferences()
	ctrl := newController(cat, idx, prefs)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	var updates <-chan *config.Config
	if w, err := config.NewWatcher(resolvedConfigPath()); err == nil {
		if err := w.Start(ctx); err != nil {
			logging.ConfigWarn("Config hot reload disabled: %v", err)
		} else {
			updates = w.Updates()
		}
		defer w.Stop()
	} else {
		logging.ConfigWarn("Config watcher unavailable: %v", err)
	}

	m := browser.New(browser.Options{
		Controller: ctrl,
		Config:     cfg,
		Dark:       cfg.IsDark(ui.DetectDark()),
		Updates:    updates,
	})

	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if cfg.UI.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}

	logging.Boot("Starting browser at %s (%s)", ctrl.State().CurrentID, ctrl.State().Language)
	final, err := tea.NewProgram(m, opts...).Run()
	if err != nil {
		return fmt.Errorf("browser exited: %w", err)
	}
	if fm, ok := final.(browser.Model); ok && prefs != nil {
		st := fm.State()
		prefs.RecordSession(st.CurrentID, st.Language)
		if err := prefs.Save(); err != nil {
			logging.Boot("Could not save preferences: %v", err)
		}
	}
	logging.Boot("Browser closed")
	return nil
}
