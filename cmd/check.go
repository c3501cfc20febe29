package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/gnomegl/passmeter/pkg/strength"
)

var (
	checkStdin     bool
	checkJSON      bool
	checkFailBelow string
)

var checkCmd = &cobra.Command{
	Use:   "check [password]",
	Short: "Analyze a single password and print the full report",
	Long: `Analyze a single password and print the full report.
The password comes from the argument, from the first line of standard
input with --stdin, or from a hidden interactive prompt when attached
to a terminal.

Passing passwords as arguments leaves them in the shell history;
prefer the prompt or --stdin for real secrets.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkStdin, "stdin", false, "Read the password from the first line of standard input")
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "Emit the analysis as a single JSON object")
	checkCmd.Flags().StringVar(&checkFailBelow, "fail-below", "", "Exit non-zero when the password classifies under this tier (e.g. moderate)")

	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	// Resolve the threshold first so a mistyped tier fails before the
	// interactive prompt.
	var minTier strength.Tier
	if checkFailBelow != "" {
		tier, err := strength.ParseTier(checkFailBelow)
		if err != nil {
			return err
		}
		minTier = tier
	}

	password, err := readCheckPassword(args)
	if err != nil {
		return err
	}

	analyzer, err := buildAnalyzer()
	if err != nil {
		return err
	}

	result := analyzer.Analyze(password)

	if checkJSON {
		if err := json.NewEncoder(os.Stdout).Encode(result); err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
	} else {
		printCheckReport(result)
	}

	if checkFailBelow != "" && result.Tier < minTier {
		return fmt.Errorf("password strength %s is below %s", result.Tier, minTier)
	}

	return nil
}

func readCheckPassword(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}

	if checkStdin || !term.IsTerminal(int(os.Stdin.Fd())) {
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return "", fmt.Errorf("failed to read password from stdin: %w", err)
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	fmt.Fprint(os.Stderr, "Password: ")
	bytePassword, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(bytePassword), nil
}

func printCheckReport(result *strength.Result) {
	fmt.Printf("Strength:   %s\n", result.Tier)
	fmt.Printf("Score:      %d bits (raw %.1f, pool %d, length %d)\n", result.Score, result.RawEntropy, result.PoolSize, result.Length)
	fmt.Printf("Percent:    %.0f%%\n", result.Percent)
	fmt.Printf("Crack time: %s\n", result.CrackTime)

	if len(result.Penalties) > 0 {
		fmt.Println("\nPenalties:")
		for _, p := range result.Penalties {
			fmt.Printf("  -%d %s\n", p.Points, p.Reason)
		}
	}

	if len(result.Feedback) > 0 {
		fmt.Println()
		for _, line := range result.Feedback {
			fmt.Println(line)
		}
	}
}
