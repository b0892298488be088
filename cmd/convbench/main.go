// Command convbench runs the conversational benchmark: it generates model
// responses for multi-turn test cases, grades them with an LLM judge and
// writes per-axis scores.
package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/convbench"
	"github.com/fwojciec/convbench/bubbletea"
	"github.com/fwojciec/convbench/fs"
	"github.com/fwojciec/convbench/jsonl"
	"github.com/fwojciec/convbench/lipgloss"
	"github.com/fwojciec/convbench/openai"
	"github.com/fwojciec/convbench/runner"
	"github.com/fwojciec/convbench/yaml"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	defaultInputFile     = "./data/benchmark_questions.jsonl"
	defaultJudgeProvider = "openai"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	cmd := newRootCommand(stdout, stderr)
	cmd.SetArgs(args)
	return cmd.Execute()
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	var cfg Config
	cmd := &cobra.Command{
		Use:           "convbench",
		Short:         "Run LLM benchmark for conversational ability",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return execute(cmd.Context(), cfg, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	f := cmd.Flags()
	f.StringVar(&cfg.OutputFile, "output-file", "", "Path to save the final evaluation stats and scores")
	f.StringVar(&cfg.ResponsesFile, "responses-file", "", "JSONL file with precomputed model responses")
	f.StringVar(&cfg.ModelProvider, "model-provider", "", "Model provider for generating responses (openai, huggingface, gemini)")
	f.StringArrayVar(&cfg.ProviderArgs, "provider-args", nil, "Provider argument in key=value format (repeatable)")
	f.IntVar(&cfg.Attempts, "attempts", 1, "Number of attempts to generate for each conversation")
	f.IntVar(&cfg.GenWorkers, "max-workers-response-gen", 1, "Number of parallel workers for response generation")
	f.IntVar(&cfg.EvalWorkers, "max-workers-eval", 1, "Number of parallel workers for evaluation")
	f.StringVar(&cfg.RawFile, "raw", "", "Path to save detailed raw output (.csv)")
	f.StringVar(&cfg.InputFile, "input-file", defaultInputFile, "Test case file (.jsonl, .yaml or .yml)")
	f.StringVar(&cfg.JudgeProvider, "judge-provider", defaultJudgeProvider, "Backend used for judging")
	f.StringVar(&cfg.JudgeModel, "judge-model", "", "Judge model (default depends on --judge-provider)")
	f.StringVar(&cfg.SaveResponses, "save-responses", "", "Save generated responses to this JSONL file")
	f.StringVar(&cfg.RecordsFile, "records-file", "", "Save evaluation records to this JSONL file")
	f.BoolVar(&cfg.JudgeCache, "judge-cache", false, "Cache judgments on disk")
	f.StringVar(&cfg.EnvFile, "env-file", "./.env", "Dotenv file with API credentials")
	f.StringVar(&cfg.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	f.BoolVar(&cfg.NoTUI, "no-tui", false, "Log progress instead of showing the progress display")
	_ = cmd.MarkFlagRequired("output-file")

	// Accept --max-workers_eval style spellings.
	f.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	return cmd
}

func execute(ctx context.Context, cfg Config, stdout, stderr io.Writer) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	level, err := parseLogLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	creds, err := LoadCredentials(cfg.EnvFile, os.Getenv)
	if err != nil {
		return err
	}
	if cfg.RawFile != "" {
		if err := ensureParentDir(cfg.RawFile); err != nil {
			return err
		}
	}

	useTUI := !cfg.NoTUI && isTerminal(stderr)

	// Logs written during the progress display are replayed afterwards.
	var logBuf bytes.Buffer
	logOut := stderr
	if useTUI {
		logOut = &logBuf
	}
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level}))

	registry := NewRegistry()
	app := &App{
		Cases:             caseLoader(cfg.InputFile),
		Responses:         jsonl.NewResponseLoader(),
		Saver:             jsonl.NewSaver(),
		Records:           jsonl.NewStore(),
		Logger:            logger,
		InputFile:         cfg.InputFile,
		ResponsesFile:     cfg.ResponsesFile,
		SaveResponsesFile: cfg.SaveResponses,
		RecordsFile:       cfg.RecordsFile,
		OutputFile:        cfg.OutputFile,
		RawFile:           cfg.RawFile,
		Attempts:          cfg.Attempts,
		GenWorkers:        cfg.GenWorkers,
		EvalWorkers:       cfg.EvalWorkers,
	}

	if cfg.ResponsesFile == "" {
		app.Provider, err = newProvider(ctx, registry, cfg, creds)
		if err != nil {
			return err
		}
	}
	app.Judge, err = newJudge(ctx, registry, cfg, creds)
	if err != nil {
		return err
	}

	var result *Result
	if useTUI {
		reporter := bubbletea.NewProgressReporter(stderr)
		reporter.Run()
		app.Progress = reporter
		result, err = app.Run(ctx)
		if closeErr := reporter.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
		_, _ = io.Copy(stderr, &logBuf)
	} else {
		app.Progress = runner.NewLogProgress(logger)
		result, err = app.Run(ctx)
	}
	if err != nil {
		return err
	}

	if isTerminal(stdout) {
		fmt.Fprint(stdout, lipgloss.NewScoreTable(nil, lipgloss.DetectTheme(nil)).Render(cfg.Attempts, result.Scores))
	}
	fmt.Fprintf(stdout, "Evaluation complete. Results saved to %s\n", cfg.OutputFile)
	if cfg.RawFile != "" {
		fmt.Fprintf(stdout, "Detailed raw output saved to %s\n", cfg.RawFile)
	}
	return nil
}

func newProvider(ctx context.Context, registry *convbench.Registry, cfg Config, creds Credentials) (convbench.ModelProvider, error) {
	pcfg, err := ParseProviderArgs(cfg.ProviderArgs)
	if err != nil {
		return nil, err
	}
	pcfg, err = withCredentials(pcfg, creds, cfg.ModelProvider)
	if err != nil {
		return nil, err
	}
	return registry.Provider(ctx, cfg.ModelProvider, pcfg)
}

func newJudge(ctx context.Context, registry *convbench.Registry, cfg Config, creds Credentials) (convbench.Judge, error) {
	var zero float32
	jcfg := convbench.ProviderConfig{
		Model:       judgeModel(cfg),
		Temperature: &zero,
	}
	jcfg, err := withCredentials(jcfg, creds, cfg.JudgeProvider)
	if err != nil {
		return nil, fmt.Errorf("judge: %w", err)
	}
	judge, err := registry.Judge(ctx, cfg.JudgeProvider, jcfg)
	if err != nil {
		return nil, fmt.Errorf("judge: %w", err)
	}
	if cfg.JudgeCache {
		judge = fs.NewJudge(judge, fs.DefaultCacheDir(), cfg.JudgeProvider+"/"+jcfg.Model)
	}
	return judge, nil
}

// judgeModel returns the configured judge model or the backend default.
func judgeModel(cfg Config) string {
	if cfg.JudgeModel != "" {
		return cfg.JudgeModel
	}
	if cfg.JudgeProvider == defaultJudgeProvider {
		return openai.DefaultJudgeModel
	}
	return ""
}

// caseLoader picks the loader for path by extension.
func caseLoader(path string) convbench.TestCaseLoader {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.NewLoader()
	default:
		return jsonl.NewLoader()
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
