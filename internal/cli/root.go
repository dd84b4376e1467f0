package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "kbgraph",
	Short: "kbgraph - normalize biomedical knowledge bases into embedding inputs",
	Long: `kbgraph ingests heterogeneous biomedical ontology and vocabulary sources
(OBO ontologies, CTD tabular exports, taxonomy and gene registries, plain-text
term/edge files) and normalizes them into one canonical knowledge-base model:
concept identities, names, synonyms, parent links and a derived directed graph
with per-node topology statistics.

The normalized model is re-indexed to dense integer identifiers and exported
as a plain edge list consumable by a graph-embedding algorithm.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./.kbgraph.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Bind flags to viper
	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}
