package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/phanxgames/willowkit/internal/assetdb"
	"github.com/phanxgames/willowkit/internal/config"
	"github.com/phanxgames/willowkit/internal/tui"
	"github.com/phanxgames/willowkit/texture"
)

var (
	// Global flags
	cfgFile string
	rootDir string
	dbPath  string
	groupBy []string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "texmgr",
	Short: "Group textures by import settings and edit them",
	Long: `texmgr scans a directory of texture files, groups them by a chosen
subset of their import settings and lets you review and edit those settings.

Without a subcommand it opens the interactive browser.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBrowser(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default $WILLOWKIT_CONFIG or ~/.config/willowkit/config.toml)")
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", "", "Texture directory (overrides assets.root)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Settings database (overrides database.path)")
	rootCmd.PersistentFlags().StringSliceVar(&groupBy, "group-by", nil, "Group options, e.g. type,maxsize (overrides group.options)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Log excluded assets and TUI events")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// env is the state shared by every command.
type env struct {
	cfg     config.Config
	cfgPath string
	opts    texture.GroupOption
	src     *assetdb.FileSource
	closeDB func() error
}

// openEnv loads config, applies flag overrides, migrates and opens the
// settings database.
func openEnv() (*env, error) {
	path := cfgFile
	if path == "" {
		path = config.Path()
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if rootDir != "" {
		cfg.Assets.Root = rootDir
	}
	if dbPath != "" {
		cfg.Database.Path = dbPath
	}
	if len(groupBy) > 0 {
		cfg.Group.Options = groupBy
	}
	cfg.Debug = cfg.Debug || debug
	texture.SetDebug(cfg.Debug)

	opts, err := cfg.GroupOptions()
	if err != nil {
		return nil, err
	}
	defaults, err := cfg.DefaultSettings()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}
	if err := assetdb.RunMigrations(cfg.Database.Path); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	db, err := assetdb.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return &env{
		cfg:     cfg,
		cfgPath: path,
		opts:    opts,
		src:     assetdb.NewFileSource(db, cfg.Assets.Root, cfg.Assets.Extensions, defaults),
		closeDB: db.Close,
	}, nil
}

func runBrowser(ctx context.Context) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.closeDB()

	if e.cfg.Debug {
		f, err := tea.LogToFile(filepath.Join(os.TempDir(), "texmgr.log"), "texmgr")
		if err != nil {
			return err
		}
		defer f.Close()
	}
	if n, err := e.src.Prune(ctx); err != nil {
		return err
	} else if n > 0 {
		log.Printf("texmgr: pruned %d missing assets", n)
	}

	m := tui.New(ctx, texture.NewSession(e.src, e.opts))
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return err
	}
	if m.OptionsChanged() {
		if err := config.SaveGroupOptions(e.cfgPath, m.Session().Options()); err != nil {
			return err
		}
	}
	return nil
}
