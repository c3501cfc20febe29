package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gnomegl/passmeter/pkg/strength"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or create the passmeter config file",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a default config file including the built-in lexicons",
	Long: `Write a default config file (default: $HOME/.passmeter.yaml).
The file includes the built-in word lists so they can be edited in
place; lists removed from the file fall back to the built-ins. Set
extend_lexicon to append the lists to the built-ins instead of
replacing them.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the resolved configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

func init() {
	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "Overwrite an existing config file")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}

// configFile mirrors the settings initConfig and buildAnalyzer read
// back through viper.
type configFile struct {
	Workers       int  `yaml:"workers"`
	ExtendLexicon bool `yaml:"extend_lexicon"`
	Lexicons      struct {
		WeakWords        []string `yaml:"weak_words"`
		CompositeWords   []string `yaml:"composite_words"`
		KeyboardPatterns []string `yaml:"keyboard_patterns"`
		SimpleSequences  []string `yaml:"simple_sequences"`
	} `yaml:"lexicons"`
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	var path string
	if len(args) > 0 {
		path = args[0]
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to resolve home directory: %w", err)
		}
		path = filepath.Join(home, ".passmeter.yaml")
	}

	if _, err := os.Stat(path); err == nil && !configForce {
		return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
	}

	defaults := strength.DefaultConfig()

	var cfg configFile
	cfg.Lexicons.WeakWords = defaults.WeakWords
	cfg.Lexicons.CompositeWords = defaults.CompositeWords
	cfg.Lexicons.KeyboardPatterns = defaults.KeyboardPatterns
	cfg.Lexicons.SimpleSequences = defaults.SimpleSequences

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := "# passmeter configuration.\n" +
		"# The lexicon lists below replace the built-ins; set extend_lexicon\n" +
		"# to true to append them to the built-ins instead.\n"

	if err := os.WriteFile(path, append([]byte(header), data...), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Wrote config file: %s\n", path)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	settings := viper.AllSettings()
	if len(settings) == 0 {
		fmt.Println("No configuration loaded; built-in defaults are in effect.")
		return nil
	}

	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to render configuration: %w", err)
	}

	if file := viper.ConfigFileUsed(); file != "" {
		fmt.Printf("# from %s\n", file)
	}
	fmt.Print(string(data))
	return nil
}
