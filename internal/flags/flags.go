package flags

import "github.com/spf13/cobra"

type CommonFlags struct {
	OutputDir     string
	Split         bool
	NoSummary     bool
	ShowPasswords bool
	ReusedFile    string
	NoDedupe      bool
}

func AddOutputFlags(cmd *cobra.Command, flags *CommonFlags) {
	cmd.Flags().StringVarP(&flags.OutputDir, "output-dir", "o", "", "Output directory for generated files")
	cmd.Flags().BoolVarP(&flags.Split, "split", "s", false, "Split output files at 100MB")
	cmd.Flags().BoolVar(&flags.NoSummary, "no-summary", false, "Omit the scan summary record from the output")
}

func AddDisplayFlags(cmd *cobra.Command, flags *CommonFlags) {
	cmd.Flags().BoolVar(&flags.ShowPasswords, "show-passwords", false, "Write passwords in clear text instead of masking them")
}

func AddDedupeFlags(cmd *cobra.Command, flags *CommonFlags) {
	cmd.Flags().StringVar(&flags.ReusedFile, "reused-file", "", "Path to save passwords that appear more than once")
	cmd.Flags().BoolVar(&flags.NoDedupe, "no-dedupe", false, "Analyze every occurrence instead of skipping repeated passwords")
}

func AddAllFlags(cmd *cobra.Command, flags *CommonFlags) {
	AddOutputFlags(cmd, flags)
	AddDisplayFlags(cmd, flags)
	AddDedupeFlags(cmd, flags)
}
