package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"
)

// replCmd is a thin interactive wrapper that re-dispatches each typed
// line through the same subcommand tree used for one-shot invocations,
// grounded on Hareesh108-haruDB/cmd/cli's liner-based prompt loop (that
// client talks to a TCP server; here the "server" is just this process,
// so each line is split into args and fed straight back into rootCmd).
var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive shell",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runREPL()
	},
}

func init() { rootCmd.AddCommand(replCmd) }

func runREPL() error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	historyFile := filepath.Join(os.TempDir(), ".bplusdb_history")
	if f, err := os.Open(historyFile); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}

	fmt.Println("bplusdb interactive shell — type 'exit' to quit")
	for {
		input, err := line.Prompt("bplusdb> ")
		if err != nil {
			break
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)
		if input == "exit" || input == "quit" {
			break
		}

		args := append([]string{"--db", dbName}, strings.Fields(input)...)
		rootCmd.SetArgs(args)
		if err := rootCmd.Execute(); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
	}

	if f, err := os.Create(historyFile); err == nil {
		_, _ = line.WriteHistory(f)
		f.Close()
	}
	return nil
}
