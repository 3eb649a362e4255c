// Election CLI — инструмент командной строки для работы
// с кандидатами, партиями, избирателями и голосами через HTTP API.
//
// Использование:
//
//	election [--api-url URL] [--json] <command> <subcommand> [flags]
//
// Команды:
//
//	candidate  Управление кандидатами
//	party      Управление партиями
//	voter      Управление избирателями (в т.ч. импорт из CSV)
//	vote       Голоса и итоги (tally, --csv)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shaiso/Election/internal/cli"
)

// version задаётся через ldflags при сборке.
var version = "dev"

func main() {
	var apiURL string
	var jsonOutput bool

	defaultURL := "http://localhost:8080"
	if v := os.Getenv("ELECTION_API_URL"); v != "" {
		defaultURL = v
	}

	rootCmd := &cobra.Command{
		Use:           "election",
		Short:         "Election CLI — candidates, parties, voters and votes",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", defaultURL, "API server URL (env ELECTION_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	clientFn := func() *cli.Client { return cli.NewClient(apiURL) }
	outputFn := func() *cli.Output { return cli.NewOutput(jsonOutput) }

	rootCmd.AddCommand(
		cli.NewCandidateCmd(clientFn, outputFn),
		cli.NewPartyCmd(clientFn, outputFn),
		cli.NewVoterCmd(clientFn, outputFn),
		cli.NewVoteCmd(clientFn, outputFn),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
