package cmd

import (
	"os"
	"path/filepath"

	"github.com/bmatsuo/rlisp/history"
	"github.com/bmatsuo/rlisp/repl"
	"github.com/spf13/cobra"
)

var (
	replPrompt      string
	replHistoryDB   string
	replHistoryFile string
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive session",
	Long: `Start an interactive read-eval-print loop.  Definitions persist for the
length of the session.  Enter exit or press Ctrl-D to quit.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		flagFromEnv(cmd, "prompt", EnvPrompt, &replPrompt)
		flagFromEnv(cmd, "history-db", EnvHistoryDB, &replHistoryDB)

		env, err := newEnv()
		if err != nil {
			return err
		}
		opts := []repl.Option{repl.WithPrompt(replPrompt)}
		if replHistoryFile != "" {
			opts = append(opts, repl.WithHistoryFile(replHistoryFile))
		}
		if replHistoryDB != "" {
			store, err := history.Open(cmd.Context(), replHistoryDB)
			if err != nil {
				return err
			}
			defer store.Close()
			opts = append(opts, repl.WithHistory(store, history.NewSession()))
		}
		return repl.RunRepl(cmd.Context(), env, opts...)
	},
}

func defaultHistoryFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".rlisp_history")
}

func init() {
	rootCmd.AddCommand(replCmd)

	replCmd.Flags().StringVar(&replPrompt, "prompt", repl.DefaultPrompt,
		"Primary prompt (env "+EnvPrompt+")")
	replCmd.Flags().StringVar(&replHistoryDB, "history-db", "",
		"Record evaluations in this sqlite database (env "+EnvHistoryDB+")")
	replCmd.Flags().StringVar(&replHistoryFile, "history-file", defaultHistoryFile(),
		"Line editing history file, empty to disable")
}
