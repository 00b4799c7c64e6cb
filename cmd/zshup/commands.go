package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/germanex3000-hacker/zshup/internal/cmdrun"
	"github.com/germanex3000-hacker/zshup/internal/installer"
	"github.com/germanex3000-hacker/zshup/internal/log"
	"github.com/germanex3000-hacker/zshup/internal/platform"
	"github.com/germanex3000-hacker/zshup/internal/tui"
)

var rootCmd = &cobra.Command{
	Use:   "zshup",
	Short: "Guided zsh + powerlevel10k installer",
	Long:  "zshup sets up a complete zsh environment.\n\nIt installs zsh through your package manager, wires the powerlevel10k\ntheme into ~/.zshrc via Oh My Zsh, Antigen, or a plain git clone, and\noptionally downloads the MesloLGS Nerd Font.",
	Run:   runInstall,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		printASCII()
		fmt.Printf("zshup %s\n", Version)
	},
}

func printASCII() {
	logo := `
███████╗███████╗██╗  ██╗██╗   ██╗██████╗
╚══███╔╝██╔════╝██║  ██║██║   ██║██╔══██╗
  ███╔╝ ███████╗███████║██║   ██║██████╔╝
 ███╔╝  ╚════██║██╔══██║██║   ██║██╔═══╝
███████╗███████║██║  ██║╚██████╔╝██║
╚══════╝╚══════╝╚═╝  ╚═╝ ╚═════╝ ╚═╝ `
	fmt.Println(logo)
}

func runInstall(cmd *cobra.Command, args []string) {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("cannot resolve home directory: %v", err)
	}

	runner := cmdrun.NewExecRunner()
	logChan := make(chan string, 100)
	orchestrator := installer.New(afero.NewOsFs(), runner, home, logChan)

	noTUI, _ := cmd.Flags().GetBool("no-tui")
	if noTUI {
		runConsoleMode(orchestrator, runner, logChan)
		return
	}

	model := tui.NewModel(Version, orchestrator, runner, logChan)
	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}

	if m, ok := finalModel.(tui.Model); ok && m.FatalErr() != nil {
		fmt.Printf("Installation failed: %v\n", m.FatalErr())
		os.Exit(1)
	}
}

func runConsoleMode(orchestrator *installer.Orchestrator, runner cmdrun.Runner, logChan chan string) {
	// The console prints progress itself; installer log lines go to the
	// structured logger so they stay visible without a TUI draining them.
	go func() {
		for line := range logChan {
			log.Debug(line)
		}
	}()

	ctx := context.Background()
	plat := platform.Detect(ctx, runner)
	console := installer.NewConsole(orchestrator, os.Stdin, os.Stdout)
	os.Exit(console.Run(ctx, plat))
}
