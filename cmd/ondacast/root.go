package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jmrivas/ondacast/internal/catalog"
	"github.com/jmrivas/ondacast/internal/config"
	"github.com/jmrivas/ondacast/internal/logging"
	"github.com/jmrivas/ondacast/internal/player"
	"github.com/jmrivas/ondacast/internal/store"
	"github.com/jmrivas/ondacast/internal/ui"
	"github.com/jmrivas/ondacast/internal/widget"
)

var version = "dev"

var (
	configPath string
	dataPath   string
	mpvPath    string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "ondacast",
	Short: "Terminal client for the OndaCast podcast",
	Long: `ondacast - terminal client for the OndaCast podcast

Browse the episode catalog, read the show notes and play episodes
through mpv, all without leaving the terminal.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "Path to an episodes JSON file (overrides the built-in catalog)")
	rootCmd.PersistentFlags().StringVar(&mpvPath, "mpv", "", "Path to the mpv binary")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("ondacast {{.Version}}\n")
}

func run() error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if dataPath != "" {
		cfg.DataFile = dataPath
	}
	if mpvPath != "" {
		cfg.MpvPath = mpvPath
	}

	logFile := cfg.LogFile
	if logFile == "" {
		logFile = config.DefaultLogFile()
	}
	closer, err := logging.Setup(logFile, verbose)
	if err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}
	defer closer.Close()

	cat, err := catalog.Load(cfg.DataFile)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}
	logrus.Infof("catalog loaded: %d episodes", cat.Len())

	st := store.New()
	st.SetVolume(cfg.Volume)

	p := player.New(cfg.MpvPath)
	if err := p.Start(); err != nil {
		return fmt.Errorf("starting mpv: %w", err)
	}
	defer p.Shutdown()

	w := widget.New(st, p)
	w.Bind()
	defer w.Unbind()
	go w.Run(p.Events())

	app := ui.NewApp(cat, st, w)
	return app.Run()
}
