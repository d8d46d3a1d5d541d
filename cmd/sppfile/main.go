package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/15226124477/sppfile"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const defaultConfigPath = "sppfile.yaml"

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2CD7C7"))
	errorStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#E74C3C")).
			Foreground(lipgloss.Color("#E74C3C")).
			Padding(0, 1)
)

var rootCmd = &cobra.Command{
	Use:           "sppfile",
	Short:         "Single point positioning over a RINEX observation/navigation pair",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
		os.Exit(1)
	}
}

func configPath() string {
	if p := os.Getenv("SPPFILE_CONFIG"); p != "" {
		return p
	}
	return defaultConfigPath
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := sppfile.LoadConfig(configPath())
	if err != nil {
		return err
	}
	level, _ := log.ParseLevel(cfg.LogLevel)
	log.SetLevel(level)

	solver, err := sppfile.NewExecSolver(cfg.Solver)
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stderr, titleStyle.Render("sppfile: single point positioning"))
	interactive := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	obsPath, navPath, err := promptPaths(cmd.InOrStdin(), os.Stderr, interactive)
	if err != nil {
		return err
	}

	// 读取失败按空数据处理, 由 Run 给出致命错误
	runner := sppfile.NewRunner(cfg, solver, cmd.OutOrStdout())
	obs, station, err := sppfile.LoadObservation(obsPath, cfg.Encoding)
	if err != nil {
		log.Warning(err)
	} else {
		runner.ReportStation(station)
	}
	nav, err := sppfile.LoadNavigation(navPath, cfg.Encoding)
	if err != nil {
		log.Warning(err)
	}

	_, err = runner.Run(obs, nav)
	switch {
	case errors.Is(err, sppfile.ErrNoObservations):
		return fmt.Errorf("%w in %s", err, obsPath)
	case errors.Is(err, sppfile.ErrNoNavigation):
		return fmt.Errorf("%w in %s", err, navPath)
	}
	return err
}
