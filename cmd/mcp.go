package cmd

import (
	"log/slog"

	"github.com/bmatsuo/rlisp/history"
	"github.com/bmatsuo/rlisp/lisp"
	"github.com/bmatsuo/rlisp/lisp/lispmcp"
	"github.com/spf13/cobra"
)

// Version is reported to MCP clients.
var Version = "0.1.0"

var mcpHistoryDB string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve a lisp session as MCP tools over stdio",
	Long: `Serve a lisp session to Model Context Protocol clients over stdin and
stdout.  The tools rlisp_eval, rlisp_bind, and rlisp_reset operate on a single
session environment.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		flagFromEnv(cmd, "history-db", EnvHistoryDB, &mcpHistoryDB)

		var opts []lispmcp.Option
		if mcpHistoryDB != "" {
			store, err := history.Open(cmd.Context(), mcpHistoryDB)
			if err != nil {
				return err
			}
			defer store.Close()
			opts = append(opts, lispmcp.WithHistory(store, history.NewSession()))
		}
		opts = append(opts, lispmcp.WithLogger(slog.Default()))
		// Program output must not corrupt the protocol stream on stdout.
		newSessionEnv := func() (*lisp.LEnv, error) {
			return newEnv(lisp.WithStdout(cmd.ErrOrStderr()))
		}
		s, err := lispmcp.New("rlisp", Version, newSessionEnv, opts...)
		if err != nil {
			return err
		}
		return s.ServeStdio()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().StringVar(&mcpHistoryDB, "history-db", "",
		"Record evaluations in this sqlite database (env "+EnvHistoryDB+")")
}
