package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var host string

var rootCmd = &cobra.Command{
	Use:   "interclubs-cli",
	Short: "A CLI to interact with the interclubs service",
	Long:  `A command line interface to trigger championship simulations and inspect standings on a running interclubs service.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&host, "host", "http://localhost:8080", "The host of the interclubs service")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error("Command failed", "error", err)
		os.Exit(1)
	}
}
