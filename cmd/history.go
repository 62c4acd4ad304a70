package cmd

import (
	"fmt"

	"github.com/bmatsuo/rlisp/history"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	historyDB       string
	historySession  string
	historyLimit    int
	historySessions bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded evaluations",
	Long:  `Show evaluations recorded by the repl and mcp commands, newest first.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		flagFromEnv(cmd, "history-db", EnvHistoryDB, &historyDB)
		if historyDB == "" {
			return fmt.Errorf("no history database (use --history-db or %s)", EnvHistoryDB)
		}
		store, err := history.Open(cmd.Context(), historyDB)
		if err != nil {
			return err
		}
		defer store.Close()

		w := cmd.OutOrStdout()
		if historySessions {
			sessions, err := store.Sessions(cmd.Context())
			if err != nil {
				return err
			}
			for _, s := range sessions {
				fmt.Fprintln(w, s)
			}
			return nil
		}
		entries, err := store.List(cmd.Context(), history.Query{
			Session: historySession,
			Limit:   historyLimit,
		})
		if err != nil {
			return err
		}
		dim := color.New(color.Faint)
		red := color.New(color.FgRed)
		for _, e := range entries {
			dim.Fprintf(w, "%d %s %s\n", e.ID, e.Session, e.CreatedAt.Local().Format("2006-01-02 15:04:05"))
			fmt.Fprintln(w, e.Source)
			if e.Error != "" {
				red.Fprintln(w, e.Error)
			} else if e.Result != "" {
				fmt.Fprintln(w, e.Result)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().StringVar(&historyDB, "history-db", "",
		"History database (env "+EnvHistoryDB+")")
	historyCmd.Flags().StringVar(&historySession, "session", "",
		"Only show entries from this session")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20,
		"Maximum number of entries, less than one for all")
	historyCmd.Flags().BoolVar(&historySessions, "sessions", false,
		"List session names instead of entries")
}
