package main

import (
	"os"

	"github.com/germanex3000-hacker/zshup/internal/log"
)

var Version = "dev"

func init() {
	rootCmd.Flags().Bool("no-tui", false, "Run the plain line-oriented installer instead of the TUI")
	rootCmd.AddCommand(versionCmd)
}

func main() {
	// Block root
	if os.Geteuid() == 0 {
		log.Fatal("This program should not be run as root. Exiting.")
	}

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
