package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"waver/internal/config"
	"waver/internal/inference"
	"waver/internal/question"
	"waver/internal/report"
	"waver/internal/runner"
)

// newProvider is swapped out by tests to avoid real network credentials.
var newProvider = func(cfg config.Config) (inference.Provider, error) {
	return inference.ProviderFromEnv(cfg.Provider.Name, cfg.Provider.BaseURL, nil)
}

// runRun builds the handler for the run command.
func runRun(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		configPath := flags.String("config", "waver.yml", "Path to the run config file")
		questionsPath := flags.String("questions", "", "Path to the question dataset (overrides config)")
		outDir := flags.String("out", "", "Output directory (overrides config)")
		verbose := flags.Bool("verbose", false, "Log per-call progress to stderr")
		noColor := flags.Bool("no-color", false, "Disable styled output")
		if err := flags.Parse(args); err != nil {
			if err == flag.ErrHelp {
				printCommandUsage(cmd, stdout)
				return ExitOK
			}
			return ExitUsage
		}
		if flags.NArg() > 0 {
			fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(flags.Args(), " "))
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		cfg, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
			return ExitError
		}
		if *questionsPath != "" {
			cfg.QuestionsFile = *questionsPath
		}
		if *outDir != "" {
			cfg.OutputDir = *outDir
		}
		if cfg.QuestionsFile == "" {
			fmt.Fprintln(stderr, "No question dataset: set questions_file in the config or pass --questions")
			return ExitUsage
		}

		spec, err := question.LoadSpec(cfg.QuestionsFile)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load questions: %v\n", err)
			return ExitError
		}

		provider, err := newProvider(cfg)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to build provider: %v\n", err)
			return ExitError
		}

		orchestrator := runner.NewOrchestrator(provider, cfg, runner.Options{
			Verbose:       *verbose,
			VerboseWriter: stderr,
			NoColor:       *noColor,
		})
		results, err := orchestrator.Evaluate(context.Background(), spec.Questions)
		if err != nil {
			fmt.Fprintf(stderr, "Run failed: %v\n", err)
			return ExitError
		}

		paths, err := runner.NewOutputPaths(cfg.OutputDir, results.RunID)
		if err != nil {
			fmt.Fprintf(stderr, "Run failed: %v\n", err)
			return ExitError
		}
		if err := runner.WriteResults(paths, results); err != nil {
			fmt.Fprintf(stderr, "Failed to write results: %v\n", err)
			return ExitError
		}

		fmt.Fprint(stdout, report.Render(results))
		fmt.Fprintf(stdout, "\nResults: %s\n", paths.ResultsPath())
		return ExitOK
	}
}
