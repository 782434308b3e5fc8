package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/picogrid/swarm-sim/pkg/config"
	"github.com/picogrid/swarm-sim/pkg/logger"
	"github.com/picogrid/swarm-sim/pkg/reporting"
	"github.com/picogrid/swarm-sim/pkg/simulator"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run an engagement scenario",
	Long:  `Run an engagement scenario from a YAML file, interactively selected if not specified`,
	RunE:  runScenario,
}

func init() {
	runCmd.Flags().StringP("scenario", "s", "", "scenario file (YAML)")
	runCmd.Flags().StringP("output", "o", "results", "output directory for reports")
	runCmd.Flags().Float64("t-end", 0, "override the scenario end time in seconds")
	runCmd.Flags().String("assignment", "", "override the assignment strategy (distance, round-robin)")
	runCmd.Flags().Uint64("seed", 0, "override the scenario seed")
}

func runScenario(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString("scenario")
	if path == "" {
		selected, err := selectScenario()
		if err != nil {
			return err
		}
		path = selected
	}

	scenario, err := config.LoadScenario(path)
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}

	if strategy, _ := cmd.Flags().GetString("assignment"); strategy != "" {
		scenario.Assignment = strategy
	}
	if cmd.Flags().Changed("seed") {
		scenario.Seed, _ = cmd.Flags().GetUint64("seed")
	}
	if override, _ := cmd.Flags().GetFloat64("t-end"); override > 0 {
		scenario.EndTime = override
	}
	tEnd := scenario.EndTime

	sim, err := simulator.New(scenario)
	if err != nil {
		return fmt.Errorf("failed to build simulation: %w", err)
	}
	defer sim.Close()

	// Cancel the run cleanly on Ctrl-C.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.LogSection(fmt.Sprintf("%s Scenario: %s", logger.IconRocket, scenario.Name))
	logger.LogKeyValue("Duration", scenario.Duration())
	logger.LogKeyValue("Seed", scenario.Seed)
	start := time.Now()
	runErr := sim.Run(ctx, tEnd)
	elapsed := time.Since(start)
	if runErr != nil {
		logger.Warnf("run ended early: %v", runErr)
	}

	outputDir, _ := cmd.Flags().GetString("output")
	logger.Progressf("writing artifacts to %s", outputDir)
	report := reporting.BuildReport(scenario.Name, tEnd, scenario.Seed,
		sim.Interceptors(), sim.Threats(), sim.Events())
	reportPath := filepath.Join(outputDir, "report.json")
	if err := report.Write(reportPath); err != nil {
		return err
	}
	trajectoriesPath := filepath.Join(outputDir, "trajectories.json")
	if err := reporting.WriteTrajectories(trajectoriesPath, sim.Interceptors(), sim.Threats()); err != nil {
		return err
	}

	logger.LogSection("Engagement Summary")
	logger.LogKeyValue("Wall time", elapsed.Round(time.Millisecond))
	logger.LogKeyValue("Interceptors expended", fmt.Sprintf("%d/%d", report.Interceptors.Hit, report.Interceptors.Total))
	logger.LogKeyValue("Threats destroyed", fmt.Sprintf("%d/%d", report.Threats.Hit, report.Threats.Total))
	logger.LogKeyValue("Threats surviving", report.Threats.Surviving)
	logger.Successf("report written to %s", reportPath)
	return runErr
}

// selectScenario prompts for a scenario file from the scenarios directory.
func selectScenario() (string, error) {
	matches, err := filepath.Glob(filepath.Join("scenarios", "*.yaml"))
	if err != nil || len(matches) == 0 {
		return "", fmt.Errorf("no scenario files found in scenarios/, use --scenario")
	}

	var selected string
	prompt := &survey.Select{
		Message: "Select a scenario:",
		Options: matches,
	}
	if err := survey.AskOne(prompt, &selected); err != nil {
		return "", fmt.Errorf("scenario selection aborted: %w", err)
	}
	return selected, nil
}
