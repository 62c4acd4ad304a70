package cmd

import (
	"fmt"
	"os"

	"github.com/bmatsuo/rlisp/lisp"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	runExpression bool
	runPrint      bool
	runTrace      bool
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [flags] FILE...",
	Short: "Run lisp code",
	Long:  `Run lisp code provided supplied via the command line or a file.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnv()
		if err != nil {
			return err
		}
		for _, arg := range args {
			v := runSource(env, arg)
			if v.Type == lisp.LError {
				color.New(color.FgRed).Fprintln(os.Stderr, v.Str)
				if runTrace && v.Stack != nil {
					v.Stack.DebugPrint(os.Stderr)
				}
				return fmt.Errorf("%s: %w", runSourceName(arg), v.Errno)
			}
			if runPrint && !v.IsVoid() {
				fmt.Fprintln(cmd.OutOrStdout(), v)
			}
		}
		return nil
	},
}

func runSource(env *lisp.LEnv, arg string) *lisp.LVal {
	if runExpression {
		return env.LoadString(runSourceName(arg), arg)
	}
	f, err := os.Open(arg)
	if err != nil {
		return lisp.Error(lisp.ErrnoPanic, err)
	}
	defer f.Close()
	return env.Load(arg, f)
}

func runSourceName(arg string) string {
	if runExpression {
		return "<expression>"
	}
	return arg
}

func init() {
	rootCmd.AddCommand(runCmd)

	// Here flags for the run command are defined
	runCmd.Flags().BoolVarP(&runExpression, "expression", "e", false,
		"Interpret arguments as lisp expressions")
	runCmd.Flags().BoolVarP(&runPrint, "print", "p", false,
		"Print the value of each argument to stdout")
	runCmd.Flags().BoolVar(&runTrace, "trace", false,
		"Print a stack trace when evaluation fails")
}
