package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/cjeanneret/cardcam/internal/config"
	"github.com/cjeanneret/cardcam/internal/debug"
	"github.com/cjeanneret/cardcam/internal/notice"
	"github.com/cjeanneret/cardcam/internal/ui"
)

func main() {
	os.Exit(submain())
}

func submain() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		log.Printf("cardcam: %v", err)
		return 1
	}
	return 0
}

// globalFlags are shared by every command. Zero values mean "use config".
type globalFlags struct {
	configPath string
	debugLevel int
	mockGPIO   bool
	startTab   ui.Screen
}

func newRootCmd() *cobra.Command {
	f := &globalFlags{}
	root := &cobra.Command{
		Use:           "cardcam",
		Short:         "Photograph trading cards from the terminal",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Flags(), f)
			if err != nil {
				return err
			}
			return runTUI(cmd.Context(), cfg)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&f.configPath, "config", "c", filepath.Join("configs", "default.yaml"), "path to config file")
	pf.IntVarP(&f.debugLevel, "debug", "d", 0, "override debug level (0-4)")
	pf.BoolVar(&f.mockGPIO, "mock-gpio", false, "override defaults.mock_gpio")
	root.Flags().Var(&f.startTab, "tab", "tab to open first: inventory, pictures or settings (default from config)")

	root.AddCommand(newSnapCmd(f))
	return root
}

// loadConfig reads the config file and applies flags the user set explicitly.
func loadConfig(fs *pflag.FlagSet, f *globalFlags) (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := applyOverrides(fs, f, cfg); err != nil {
		return nil, fmt.Errorf("invalid CLI override: %w", err)
	}
	return cfg, nil
}

// applyOverrides mutates cfg with the flags present in fs.
func applyOverrides(fs *pflag.FlagSet, f *globalFlags, cfg *config.Config) error {
	if fs.Changed("debug") {
		if f.debugLevel < debug.LevelOff || f.debugLevel > debug.LevelTrace {
			return fmt.Errorf("debug level must be between 0 and 4, got %d", f.debugLevel)
		}
		cfg.Defaults.DebugLevel = f.debugLevel
	}
	if fs.Changed("mock-gpio") {
		cfg.Defaults.MockGPIO = f.mockGPIO
	}
	if fs.Lookup("tab") != nil && fs.Changed("tab") {
		cfg.Defaults.StartTab = f.startTab.String()
	}
	return nil
}

// runTUI opens the tabbed interface. Debug output goes to the log file because
// the alternate screen owns stdout.
func runTUI(ctx context.Context, cfg *config.Config) error {
	start, err := ui.ParseScreen(cfg.Defaults.StartTab)
	if err != nil {
		return fmt.Errorf("defaults.start_tab: %w", err)
	}

	logFile, err := os.OpenFile(cfg.Defaults.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	debug.SetOutput(logFile)
	debug.Init(cfg.Defaults.DebugLevel)
	debug.Section("Initialization")
	debug.Value("Debug level", cfg.Defaults.DebugLevel)
	debug.Value("Start tab", start)

	a, err := newApp(cfg, notice.NewBroadcaster())
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			debug.Error(err)
		}
	}()

	if cfg.Notify.Desktop {
		desktop := notice.NewDesktop("cardcam", cfg.Notify.Icon, cfg.Notify.ErrorsOnly)
		go desktop.Run(ctx, a.bus)
	}

	m := ui.New(a.ctrl, ui.Options{
		Start:         start,
		NoticeTTL:     cfg.NoticeTTL(),
		ActionTimeout: cfg.CaptureTimeout(),
		Settings:      ui.SettingsRows(cfg),
	})
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("run tui: %w", err)
	}
	debug.Info("Saved %d photo(s) this session", a.saves.Len())
	return nil
}
