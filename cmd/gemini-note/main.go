package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/CodexForgeBR/gemini-note/internal/ai"
	"github.com/CodexForgeBR/gemini-note/internal/cli"
	"github.com/CodexForgeBR/gemini-note/internal/config"
	"github.com/CodexForgeBR/gemini-note/internal/exitcode"
	"github.com/CodexForgeBR/gemini-note/internal/logging"
	"github.com/CodexForgeBR/gemini-note/internal/model"
)

// version vars injected via ldflags at build time
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	code := exitcode.Success
	rootCmd := newRootCmd(ai.NewExecutor(), &code)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitcode.Error)
	}
	os.Exit(code)
}

// newRootCmd wires the CLI. The run's exit code is stored in code.
func newRootCmd(executor *ai.Executor, code *int) *cobra.Command {
	cfg := config.NewDefaultConfig()

	rootCmd := &cobra.Command{
		Use:     "gemini-note [flags] <file>",
		Short:   "Send an attachment and a prompt to Gemini, save the answer as a note",
		Long:    "gemini-note sends a file inline to the Gemini API together with a prompt, retries while the model is overloaded, and writes the answer as a Markdown note.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		// Positional input is checked by ValidateFlags.
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Validate flags after parsing
			if err := cli.ValidateFlags(cmd, cfg, args); err != nil {
				return err
			}
			*code = runGenerate(cmd, cfg, executor)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cli.BindPersistentFlags(rootCmd, cfg)
	cli.BindFlags(rootCmd, cfg)
	cli.SetCustomHelp(rootCmd)

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "models",
			Short: "List the suggested Gemini models",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, args []string) {
				listModels()
			},
		},
		&cobra.Command{
			Use:   "presets",
			Short: "List presets from the presets file",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return listPresets(cmd, cfg)
			},
		},
	)
	return rootCmd
}

// loadConfig merges the file, environment and flag layers. The returned
// overrides hold only the flags the user set explicitly.
func loadConfig(cmd *cobra.Command, flagCfg *config.Config) (*config.Config, map[string]string, error) {
	overrides := cli.BuildOverrides(cmd, flagCfg)

	finalCfg, err := config.LoadWithPrecedence(
		config.GlobalConfigPath(),
		config.ProjectConfigPath,
		flagCfg.ConfigFile,
		flagCfg.EnvFile,
		overrides,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	// Merge CLI-only flags (not in config files)
	cli.MergeCLIOnly(finalCfg, flagCfg)

	logging.SetVerbose(finalCfg.Verbose)
	return finalCfg, overrides, nil
}

func listModels() {
	out := logging.Writer()
	for _, id := range model.Known {
		if id == model.Default {
			fmt.Fprintf(out, "%s (default)\n", id)
			continue
		}
		fmt.Fprintln(out, id)
	}
}

func listPresets(cmd *cobra.Command, flagCfg *config.Config) error {
	cfg, _, err := loadConfig(cmd, flagCfg)
	if err != nil {
		return err
	}
	presets, err := config.LoadPresets(cfg.PresetsFile)
	if err != nil {
		return err
	}
	if len(presets) == 0 {
		logging.Info("No presets configured in " + cfg.PresetsFile)
		return nil
	}

	out := logging.Writer()
	for _, p := range presets {
		folder := p.OutputPath
		if folder == "" {
			folder = "."
		}
		fmt.Fprintf(out, "%-20s %-24s -> %s\n", p.Name, p.Model, folder)
	}
	return nil
}
