package cmd

import (
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/gnomegl/passmeter/pkg/strength"
)

var (
	genLength    int
	genCount     int
	genNoLower   bool
	genNoUpper   bool
	genNoDigits  bool
	genNoSymbols bool
	genCopy      bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate random passwords and score them",
	Long: `Generate random passwords from the enabled character classes and score
each one through the analyzer. At least one character of every enabled
class is guaranteed. With --quiet only the bare passwords are printed,
one per line, for piping into other tools.`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().IntVarP(&genLength, "length", "n", 16, "Password length")
	generateCmd.Flags().IntVarP(&genCount, "count", "c", 1, "Number of passwords to generate")
	generateCmd.Flags().BoolVar(&genNoLower, "no-lower", false, "Exclude lowercase letters")
	generateCmd.Flags().BoolVar(&genNoUpper, "no-upper", false, "Exclude uppercase letters")
	generateCmd.Flags().BoolVar(&genNoDigits, "no-digits", false, "Exclude digits")
	generateCmd.Flags().BoolVar(&genNoSymbols, "no-symbols", false, "Exclude symbols")
	generateCmd.Flags().BoolVar(&genCopy, "copy", false, "Copy the first password to the clipboard")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if genCount < 1 {
		return fmt.Errorf("count must be at least 1")
	}

	opts := strength.GenerateOptions{
		Length:  genLength,
		Lower:   !genNoLower,
		Upper:   !genNoUpper,
		Digits:  !genNoDigits,
		Symbols: !genNoSymbols,
	}

	analyzer, err := buildAnalyzer()
	if err != nil {
		return err
	}

	for i := 0; i < genCount; i++ {
		password, err := strength.Generate(opts)
		if err != nil {
			return err
		}

		if i == 0 && genCopy {
			if err := clipboard.WriteAll(password); err != nil {
				return fmt.Errorf("failed to copy to clipboard: %w", err)
			}
		}

		if quiet {
			fmt.Println(password)
			continue
		}

		result := analyzer.Analyze(password)
		fmt.Printf("%s\t%d bits\t%s\n", password, result.Score, result.Tier)
	}

	if genCopy && !quiet {
		fmt.Fprintln(os.Stderr, "First password copied to clipboard")
	}

	return nil
}
