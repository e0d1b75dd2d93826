package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pyskel",
	Short: "Extract high-signal code skeletons from Python projects",
	Long: `pyskel reduces Python sources to skeletons: function bodies below a
configured importance level are replaced by their docstring, a summary of
notable calls, the original comments, and a pass statement, while important
bodies are preserved verbatim.

Importance comes from @code_level(N) decorators and an optional module-scope
__code_level__ default. The output stays valid Python and is meant to shrink
source text fed to LLM context windows.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
