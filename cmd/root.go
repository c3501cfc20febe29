package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/gnomegl/passmeter/internal/logging"
	"github.com/gnomegl/passmeter/internal/tui"
)

var (
	cfgFile       string
	workers       int
	quiet         bool
	verbose       bool
	lexiconFile   string
	extendLexicon bool
)

var rootCmd = &cobra.Command{
	Use:   "passmeter",
	Short: "Password strength analyzer for single passwords and bulk password dumps",
	Long: `passmeter estimates password strength with a deterministic entropy model:
- Sizes the character pool and computes raw entropy per password
- Applies heuristic penalties for dictionary words, keyboard walks,
  composite word patterns, repetition, and predictable year combos
- Estimates crack time at ten billion guesses per second
- Scans password files or directories and writes text, CSV, or NDJSON reports
- Accepts plain password lists and url:user:password credential dumps

Running without a subcommand in a terminal launches the interactive analyzer.`,
	Version: "1.0.0",
	Args:    cobra.NoArgs,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.SetVerbose(verbose)
		logging.SetQuiet(quiet)
	},
	RunE: runRoot,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.passmeter.yaml)")
	rootCmd.PersistentFlags().IntVarP(&workers, "workers", "w", 0, "Number of scan workers (0 uses the sequential scanner)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress progress indicators and non-essential output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&lexiconFile, "lexicon", "l", "", "Lexicon file replacing the built-in word lists")
	rootCmd.PersistentFlags().BoolVar(&extendLexicon, "extend-lexicon", false, "Append lexicon file entries to the built-ins instead of replacing them")

	viper.BindPFlag("workers", rootCmd.PersistentFlags().Lookup("workers"))
	viper.BindPFlag("lexicon", rootCmd.PersistentFlags().Lookup("lexicon"))
	viper.BindPFlag("extend_lexicon", rootCmd.PersistentFlags().Lookup("extend-lexicon"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".passmeter")
	}

	viper.SetEnvPrefix("PASSMETER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && !quiet {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// runRoot launches the interactive analyzer when stdin is a terminal.
// Piped invocations get the help text so scripts fail loudly instead
// of hanging on a TUI they cannot drive.
func runRoot(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return cmd.Help()
	}

	analyzer, err := buildAnalyzer()
	if err != nil {
		return err
	}

	return tui.Run(analyzer)
}
