package main

import (
	"fmt"
	"os"

	"devpull/internal/bridge"
	"devpull/internal/config"
	"devpull/internal/log"
	"devpull/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	var (
		cfgFile  string
		startDir string
		debug    bool
	)

	rootCmd := &cobra.Command{
		Use:     "devpull",
		Short:   "Browse a remote device and pull files over adb",
		Long:    `Devpull is an interactive terminal browser for a device reachable through a command-line bridge (adb by default): navigate remote directories, multi-select files, and pull them locally while watching the tool's output live.`,
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			var cfg *config.Config
			var err error
			if cfgFile != "" {
				cfg, err = config.LoadConfigFile(cfgFile)
			} else {
				cfg, err = config.LoadConfig()
			}
			if err != nil {
				return err
			}
			if startDir != "" {
				cfg.Browser.StartDir = startDir
			}

			if err := log.Setup(cfg.Log.File, debug); err != nil {
				// Diagnostics are a convenience; the browser still works.
				fmt.Fprintf(os.Stderr, "warning: %v\n", err)
			}
			log.Infof("devpull %s starting in %s", version, cfg.Browser.StartDir)

			m := tui.New(cfg, bridge.NewCommandLister(cfg.Bridge.List), bridge.ExecStreamer{})

			// The program owns raw mode and the alt screen; Run restores
			// the terminal on every exit path, panics included.
			p := tea.NewProgram(m, tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}

	rootCmd.Flags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/devpull/config.yaml)")
	rootCmd.Flags().StringVar(&startDir, "start-dir", "", "remote directory to jail browsing to (overrides config)")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "enable debug logging")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
