// Package main provides the rawcmd CLI for parsing command lines against HCL schemas.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/toejough/rawcmd/internal/complete"
	"github.com/toejough/rawcmd/internal/core"
	"github.com/toejough/rawcmd/internal/flags"
	"github.com/toejough/rawcmd/internal/help"
	"github.com/toejough/rawcmd/internal/repl"
	"github.com/toejough/rawcmd/internal/schemafile"
)

func main() {
	os.Exit(runMain())
}

func runMain() int {
	// Guard against nil os.Args (should never happen, but satisfies static analysis)
	if len(os.Args) == 0 {
		fmt.Fprintln(os.Stderr, "error: os.Args is empty")
		return 1
	}

	env := environment{
		in:     os.Stdin,
		out:    os.Stdout,
		errOut: os.Stderr,
		getenv: os.Getenv,
	}

	return env.run(context.Background(), os.Args[1:])
}

// unexported constants.
const (
	binName    = "rawcmd"
	rootShort  = "Parse command lines against a declarative command schema"
	prompt     = "> "
	schemaEnv  = "RAWCMD_SCHEMA"
	schemaFlag = "schema"
)

// unexported variables.
var (
	errNoSchema = errors.New("no schema: set --" + schemaFlag + " or " + schemaEnv)
	errReported = errors.New("already reported")
)

// environment is the process boundary of one rawcmd invocation.
type environment struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer
	getenv func(string) string
}

// globals holds the resolved values of the registry flags.
type globals struct {
	schema    string
	logLevel  string
	logFormat string
	noColor   bool
}

func (e environment) run(ctx context.Context, args []string) int {
	root := e.newRootCommand()
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errReported):
		return 1
	default:
		fmt.Fprintf(e.errOut, "Error: %v\n", err)
		return 1
	}
}

func (e environment) newRootCommand() *cobra.Command {
	var g globals

	var logger *slog.Logger

	root := &cobra.Command{
		Use:           binName,
		Short:         rootShort,
		Long:          rootShort + "\n\n" + formatsHelp(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			resolved, err := resolveGlobals(cmd, e.getenv)
			if err != nil {
				return err
			}

			g = resolved
			logger = newLogger(g.logLevel, g.logFormat, e.errOut)
			logger.Debug("Resolved flags", "schema", g.schema, "log_level", g.logLevel)

			return nil
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetIn(e.in)
	root.SetOut(e.out)
	root.SetErr(e.errOut)

	declareFlags(root)

	session := func() (*repl.Session, error) {
		ns, err := loadSchema(g.schema, logger)
		if err != nil {
			return nil, err
		}

		s := repl.New(ns)
		s.Logger = logger

		if g.noColor {
			s.Styles = help.PlainStyles()
		}

		return s, nil
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "repl",
			Short: "Read command lines from stdin and print their parsed values",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				s, err := session()
				if err != nil {
					return err
				}

				s.Prompt = prompt

				return s.Run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
			},
		},
		newParseCommand(session),
		&cobra.Command{
			Use:   "complete <line>",
			Short: "Print completion candidates for a partial command line",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ns, err := loadSchema(g.schema, logger)
				if err != nil {
					logger.Debug("Completing without schema", "error", err)

					ns = core.NewNamespace("Commands")
				}

				for _, candidate := range complete.Program(ns, args[0], subcommandNames(root)) {
					fmt.Fprintln(cmd.OutOrStdout(), candidate)
				}

				return nil
			},
		},
		&cobra.Command{
			Use:       "completion " + flags.PlaceholderShell.Name,
			Short:     "Print a shell completion script",
			Args:      cobra.ExactArgs(1),
			ValidArgs: complete.Shells(),
			RunE: func(cmd *cobra.Command, args []string) error {
				return complete.Script(cmd.OutOrStdout(), args[0], binName)
			},
		},
	)

	root.SetHelpCommand(&cobra.Command{
		Use:   "help [pattern]",
		Short: "Show help for the schema commands matching a glob pattern",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := session()
			if err != nil {
				if errors.Is(err, errNoSchema) {
					return root.Help()
				}

				return err
			}

			_, err = s.Handle(strings.TrimSpace("help "+strings.Join(args, " ")), cmd.OutOrStdout())

			return err
		},
	})

	return root
}

func newParseCommand(session func() (*repl.Session, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <command> [args...]",
		Short: "Parse one command line and print its value",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := session()
			if err != nil {
				return err
			}

			v, err := s.ParseWords(args)
			if err != nil {
				if werr := s.WriteError(strings.Join(args, " "), err, cmd.ErrOrStderr()); werr != nil {
					return werr
				}

				return errReported
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), v.String())

			return err
		},
	}
	cmd.Flags().SetInterspersed(false)

	return cmd
}

// declareFlags registers the flag registry on root as persistent flags.
func declareFlags(root *cobra.Command) {
	fs := root.PersistentFlags()

	for _, def := range flags.All {
		desc := def.Desc
		if def.Env != "" {
			desc += " [$" + def.Env + "]"
		}

		if def.TakesValue {
			fs.StringP(def.Long, def.Short, def.Default, desc)
		} else {
			fs.BoolP(def.Long, def.Short, false, desc)
		}

		switch {
		case def.Removed != "":
			_ = fs.MarkHidden(def.Long)
		case def.Hidden:
			_ = fs.MarkDeprecated(def.Long, def.Desc)
		}
	}
}

// formatsHelp lists the value formats of the visible flags that need explaining.
func formatsHelp() string {
	used := flags.PlaceholdersUsedByFlags(flags.VisibleFlags())
	if len(used) == 0 {
		return ""
	}

	width := 0
	for _, p := range used {
		width = max(width, len(p.Name))
	}

	var b strings.Builder

	b.WriteString("Formats:")

	for _, p := range used {
		fmt.Fprintf(&b, "\n  %-*s    %s", width, p.Name, p.Format)
	}

	return b.String()
}

func loadSchema(path string, logger *slog.Logger) (*core.Namespace, error) {
	if path == "" {
		return nil, errNoSchema
	}

	loader := schemafile.Loader{Logger: logger}
	if schemafile.IsPattern(path) {
		return loader.LoadGlob(path)
	}

	return loader.Load(path)
}

// newLogger creates a slog.Logger for the given level and format names. It does not
// set the global logger.
func newLogger(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	var level slog.Level

	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handlerOpts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler

	if formatStr == "json" {
		handler = slog.NewJSONHandler(outW, handlerOpts)
	} else {
		handler = slog.NewTextHandler(outW, handlerOpts)
	}

	return slog.New(handler)
}

// resolveGlobals reads the registry flags, falling back to their environment
// variables, and rejects removed flags.
func resolveGlobals(cmd *cobra.Command, getenv func(string) string) (globals, error) {
	fs := cmd.Flags()

	for _, def := range flags.All {
		if !fs.Changed(def.Long) {
			if def.Env != "" && getenv(def.Env) != "" {
				if err := fs.Set(def.Long, getenv(def.Env)); err != nil {
					return globals{}, fmt.Errorf("$%s: %w", def.Env, err)
				}
			}

			continue
		}

		if def.Removed != "" {
			return globals{}, fmt.Errorf("--%s: %s", def.Long, def.Removed)
		}
	}

	var g globals

	g.schema, _ = fs.GetString(schemaFlag)
	g.logLevel, _ = fs.GetString("log-level")
	g.logFormat, _ = fs.GetString("log-format")
	g.noColor, _ = fs.GetBool("no-color")

	plain, _ := fs.GetBool("plain")
	g.noColor = g.noColor || plain

	if !validLevel(g.logLevel) {
		return globals{}, fmt.Errorf("--log-level: unknown level %q", g.logLevel)
	}

	return g, nil
}

func subcommandNames(root *cobra.Command) []string {
	var names []string

	for _, cmd := range root.Commands() {
		if cmd.IsAvailableCommand() || cmd.Name() == "help" {
			names = append(names, cmd.Name())
		}
	}

	return names
}

func validLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}
