package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath string
	rootCmd    = &cobra.Command{
		Use:   "pomodux",
		Short: "Pomodux - per-user pomodoro timer scheduler",
		Long: `Pomodux runs pomodoro timers and full work/break cycles for many
users at once. It serves an HTTP API with SSE and websocket progress
streams, ships a terminal dashboard, and can send desktop and Slack
notifications on phase transitions.`,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
