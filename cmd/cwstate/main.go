package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/synnax/cwstate/internal/chains"
	"github.com/synnax/cwstate/internal/cli"
	"github.com/synnax/cwstate/internal/config"
	"github.com/synnax/cwstate/internal/history"
	"github.com/synnax/cwstate/internal/tui"
)

var (
	version = "0.1.0"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cwstate <contract-address>",
	Short: "cwstate - CosmWasm contract state browser",
	Long: `cwstate is an interactive browser for CosmWasm smart contract state.

It fetches the full key/value store of a contract through a chain's LCD
endpoint, groups composite storage keys into maps, and presents the result
as a dual-pane TUI: top-level keys on the left, map entries and the
selected value on the right.

The LCD endpoint is picked from the contract's bech32 prefix. Override it
with --lcd, the OVERLOAD_LCD environment variable, or an entry in
~/.cwstate/chains.yaml.

Examples:
  cwstate juno1abc...                  # Browse a Juno contract
  cwstate juno1abc... --lcd http://localhost:1317
  cwstate dump juno1abc... -o yaml     # Dump state to stdout
  cwstate dump juno1abc... -q config   # JMESPath query over the state
  cwstate chains                       # List known chains`,
	Version: version,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		chain, err := resolveChain(args[0])
		if err != nil {
			return err
		}
		return tui.Run(args[0], chain, version)
	},
}

var dumpCmd = &cobra.Command{
	Use:   "dump <contract-address>",
	Short: "Print a contract's full state without the TUI",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		chain, err := resolveChain(args[0])
		if err != nil {
			return err
		}
		return cli.Dump(cmd.Context(), cli.DumpOptions{
			Address:      args[0],
			LCD:          chain.LCD,
			OutputFormat: flagOutput,
			SavePath:     flagSave,
			Query:        flagQuery,
		})
	},
}

var chainsCmd = &cobra.Command{
	Use:   "chains",
	Short: "List the known chains and their endpoints",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return err
		}
		registry, err := chains.Load(config.ChainsFile)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "PREFIX\tLCD\tRPC")
		for _, c := range registry.All() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", c.Prefix, c.LCD, c.RPC)
		}
		return w.Flush()
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently browsed contracts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return err
		}
		mgr, err := history.NewManager(config.DatabasePath)
		if err != nil {
			return err
		}
		defer mgr.Close()

		if flagClear {
			if err := mgr.Clear(); err != nil {
				return err
			}
			fmt.Println("Browse history cleared")
			return nil
		}

		entries, err := mgr.Recent(20)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No browse history")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ADDRESS\tLABEL\tMODELS\tBROWSED")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\n",
				e.Address, e.Label, e.ModelCount, e.BrowsedAt.Format("2006-01-02 15:04"))
		}
		return w.Flush()
	},
}

// Flags
var (
	flagLCD    string
	flagRPC    string
	flagOutput string
	flagSave   string
	flagQuery  string
	flagClear  bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLCD, "lcd", "", "LCD endpoint override")
	rootCmd.PersistentFlags().StringVar(&flagRPC, "rpc", "", "Tendermint RPC endpoint override (block height indicator)")

	dumpCmd.Flags().StringVarP(&flagOutput, "output", "o", "json", "Output format (json/yaml/text)")
	dumpCmd.Flags().StringVarP(&flagSave, "save", "s", "", "Save output to file")
	dumpCmd.Flags().StringVarP(&flagQuery, "query", "q", "", "JMESPath query over the state tree")

	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Clear the browse history")

	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(chainsCmd)
	rootCmd.AddCommand(historyCmd)
}

// resolveChain picks the endpoints for a contract address. Precedence:
// --lcd flag, then the OVERLOAD_LCD environment variable, then the
// chain registry keyed by bech32 prefix.
func resolveChain(address string) (chains.Chain, error) {
	if err := config.Initialize(); err != nil {
		return chains.Chain{}, err
	}

	var chain chains.Chain
	if flagLCD != "" {
		chain = chains.Chain{LCD: flagLCD}
	} else if lcd := os.Getenv("OVERLOAD_LCD"); lcd != "" {
		chain = chains.Chain{LCD: lcd}
	} else {
		registry, err := chains.Load(config.ChainsFile)
		if err != nil {
			return chains.Chain{}, err
		}
		chain, err = registry.Resolve(address)
		if err != nil {
			return chains.Chain{}, err
		}
	}

	if flagRPC != "" {
		chain.RPC = flagRPC
	}
	return chain, nil
}
