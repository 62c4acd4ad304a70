package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/bmatsuo/rlisp/lisp"
	"github.com/bmatsuo/rlisp/parser"
	"github.com/bmatsuo/rlisp/parser/rdparser"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Environment variables consulted for flags not given on the command line.
const (
	EnvLogLevel  = "RLISP_LOG_LEVEL"
	EnvReader    = "RLISP_READER"
	EnvMaxStack  = "RLISP_MAX_STACK"
	EnvPrompt    = "RLISP_PROMPT"
	EnvHistoryDB = "RLISP_HISTORY_DB"
)

var (
	envFile    string
	logLevel   string
	readerName string
	maxStack   int
)

var rootCmd = &cobra.Command{
	Use:   "rlisp",
	Short: "A small lisp interpreter",
	Long: `rlisp evaluates a small lisp dialect with integers, floats, strings,
lists, lexically scoped lambdas and proper tail calls.`,
	SilenceUsage:      true,
	PersistentPreRunE: rootPreRun,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env",
		"Environment file loaded before reading configuration (ignored if missing)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn",
		"Log level: debug, info, warn, or error (env "+EnvLogLevel+")")
	rootCmd.PersistentFlags().StringVar(&readerName, "reader", "rd",
		"Source reader: rd or parsec (env "+EnvReader+")")
	rootCmd.PersistentFlags().IntVar(&maxStack, "max-stack", lisp.DefaultMaxStackHeight,
		"Maximum call stack height, less than one for no limit (env "+EnvMaxStack+")")
}

func rootPreRun(cmd *cobra.Command, args []string) error {
	err := godotenv.Load(envFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("env file %s: %w", envFile, err)
	}
	flagFromEnv(cmd, "log-level", EnvLogLevel, &logLevel)
	flagFromEnv(cmd, "reader", EnvReader, &readerName)
	var stack string
	flagFromEnv(cmd, "max-stack", EnvMaxStack, &stack)
	if stack != "" {
		maxStack, err = strconv.Atoi(stack)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvMaxStack, err)
		}
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	logger.Debug("configuration loaded", "reader", readerName, "max_stack", maxStack)
	return nil
}

// flagFromEnv sets *p to the value of the environment variable key when the
// named flag was not given explicitly.
func flagFromEnv(cmd *cobra.Command, flag string, key string, p *string) {
	if cmd.Flags().Changed(flag) {
		return
	}
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*p = v
	}
}

func newReader() (lisp.Reader, error) {
	switch strings.ToLower(readerName) {
	case "", "rd":
		return rdparser.NewReader(), nil
	case "parsec":
		return parser.NewReader(), nil
	default:
		return nil, fmt.Errorf("unknown reader: %q", readerName)
	}
}

// newEnv returns a root environment configured from command line flags.
func newEnv(config ...lisp.Config) (*lisp.LEnv, error) {
	reader, err := newReader()
	if err != nil {
		return nil, err
	}
	env := lisp.NewEnv(nil)
	config = append([]lisp.Config{
		lisp.WithReader(reader),
		lisp.WithMaximumStackHeight(maxStack),
		lisp.WithLogger(slog.Default()),
	}, config...)
	rc := lisp.InitializeUserEnv(env, config...)
	if err := lisp.GoError(rc); err != nil {
		return nil, err
	}
	return env, nil
}
