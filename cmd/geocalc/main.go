// Command geocalc evaluates scalar, vector, color and rotation expressions.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/woozymasta/geocalc"
	"gopkg.in/yaml.v3"
)

var (
	version = "dev"
	commit  = "none"
)

const usage = `Usage:
  geocalc [flags] <expr>         evaluate an expression
  geocalc [flags]                start an interactive session
  geocalc [flags] tokens <expr>  print the tokens of an expression
  geocalc [flags] ast <expr>     print the parsed expression tree
  geocalc [flags] check <expr>   report likely mistakes without evaluating
  geocalc [flags] seed -kind K <value>
                                 print the expression of a YAML/JSON value
  geocalc version                print the version

Flags:
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("geocalc", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}

	configPath := fs.String("config", "", "config file (default $"+configEnv+" or ~/.geocalc/config.yaml)")
	mode := fs.String("mode", "", "angle mode (deg, rad)")
	precision := fs.Int("precision", 0, "significant digits of results")
	target := fs.String("target", "", "coerce results to a kind (number, vec2, vec3, vec4, color, quat)")
	logLevel := fs.String("log-level", "", "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	// Flags win over the config file.
	if *mode != "" {
		cfg.AngleMode = *mode
	}
	if *precision != 0 {
		cfg.Precision = *precision
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	logger := newLogger(stderr, cfg.LogLevel)

	opt := cfg.EvalOptions()
	kind, ok := geocalc.ParseKind(*target)
	if !ok {
		fmt.Fprintf(stderr, "Error: unknown target kind %q\n", *target)
		return 2
	}
	opt.Target = kind

	rest := fs.Args()
	if len(rest) == 0 {
		r := newREPL(cfg, opt, stdout, logger)
		if err := r.run(cfg); err != nil {
			logger.Error().Err(err).Msg("interactive session failed")
			return 1
		}
		return 0
	}

	expr := strings.Join(rest[1:], " ")
	switch rest[0] {
	case "tokens":
		return cmdTokens(stdout, stderr, expr)
	case "ast":
		return cmdAST(stdout, stderr, expr, opt)
	case "check":
		return cmdCheck(stdout, stderr, expr, opt)
	case "seed":
		return cmdSeed(stdout, stderr, rest[1:])
	case "version":
		fmt.Fprintf(stdout, "geocalc %s (%s)\n", version, commit)
		return 0
	}

	expr = strings.Join(rest, " ")
	res, err := geocalc.Evaluate(expr, &opt)
	if err != nil {
		logger.Debug().Err(err).Str("expr", expr).Msg("evaluation failed")
		printError(stderr, expr, err)
		return 1
	}

	logger.Debug().Str("expr", expr).Str("result", res).Msg("evaluated")
	fmt.Fprintln(stdout, res)
	return 0
}

// newLogger creates a console logger on w. Unknown levels fall back to info.
func newLogger(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: w}).
		With().Timestamp().Str("service", "geocalc").Logger().
		Level(lvl)
}

// printError prints err and, when it carries a position, a caret under the
// offending character.
func printError(w io.Writer, expr string, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)

	var e *geocalc.Error
	if !errors.As(err, &e) || e.Pos < 0 || strings.ContainsAny(expr, "\r\n") {
		return
	}
	fmt.Fprintf(w, "  %s\n  %s^\n", expr, strings.Repeat(" ", e.Pos))
}

// cmdTokens prints one token per line.
func cmdTokens(stdout, stderr io.Writer, expr string) int {
	toks, err := geocalc.Tokenize(expr)
	if err != nil {
		printError(stderr, expr, err)
		return 1
	}

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "POS\tTYPE\tTEXT")
	for _, tok := range toks {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", tok.Pos, tok.Type, tok.Lit)
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// cmdAST prints the parsed tree as an S-expression.
func cmdAST(stdout, stderr io.Writer, expr string, opt geocalc.EvalOptions) int {
	n, err := geocalc.Parse(expr, &opt.Parse)
	if err != nil {
		printError(stderr, expr, err)
		return 1
	}

	fmt.Fprintln(stdout, geocalc.Dump(n))
	return 0
}

// cmdCheck prints validator issues as YAML. It fails when any issue is an
// error.
func cmdCheck(stdout, stderr io.Writer, expr string, opt geocalc.EvalOptions) int {
	n, err := geocalc.Parse(expr, &opt.Parse)
	if err != nil {
		printError(stderr, expr, err)
		return 1
	}

	issues := geocalc.Validate(n, &geocalc.ValidateOptions{AngleMode: opt.AngleMode})
	if len(issues) == 0 {
		fmt.Fprintln(stdout, "ok")
		return 0
	}

	enc := yaml.NewEncoder(stdout)
	enc.SetIndent(2)
	if err := enc.Encode(issues); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if err := enc.Close(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	for _, is := range issues {
		if is.Level == geocalc.IssueError {
			return 1
		}
	}
	return 0
}

// cmdSeed decodes a typed value and prints its seed expression.
func cmdSeed(stdout, stderr io.Writer, args []string) int {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	fs.SetOutput(stderr)
	kindName := fs.String("kind", "", "value kind (number, vec2, vec3, vec4, color, quat)")
	as := fs.String("as", "", "convert the value to this kind first")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	kind, ok := geocalc.ParseKind(*kindName)
	if !ok || kind == geocalc.KindNone {
		fmt.Fprintf(stderr, "Error: seed needs -kind, got %q\n", *kindName)
		return 2
	}
	hint, ok := geocalc.ParseKind(*as)
	if !ok {
		fmt.Fprintf(stderr, "Error: unknown kind %q\n", *as)
		return 2
	}

	v, err := decodeValue(kind, strings.Join(fs.Args(), " "))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	out, err := geocalc.SeedExpressionAs(v, hint)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	fmt.Fprintln(stdout, out)
	return 0
}
