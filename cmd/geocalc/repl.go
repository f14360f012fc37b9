package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog"
	"github.com/woozymasta/geocalc"
)

const prompt = "geocalc> "

// Terminal control sequences used by the live preview.
const (
	escNextLine  = "\x1bE"
	escUpLine    = "\x1bM"
	escClearLine = "\x1b[2K"
	escRight     = "\x1b[%dC"
)

const replHelp = `Enter an expression to evaluate it. The result of the current line is
previewed below it while typing.

Commands:
  :deg          trigonometry in degrees
  :rad          trigonometry in radians
  :history      list results, newest first
  :recall N     evaluate history entry N again
  :remove N     delete history entry N
  :clear        clear the history
  :m+ / :m-     add or subtract the last numeric result to memory
  :mr           show memory as an expression
  :mc           reset memory to 0
  :help         show this help
  :quit         leave (also Ctrl-D)
`

// repl is an interactive evaluation session.
type repl struct {
	out  io.Writer      // Result output
	hist *history       // Result history
	log  zerolog.Logger // Session logger

	last   geocalc.Value // Last successful result, nil before the first one
	memory float64       // Memory register

	mu    sync.Mutex          // Guards opt and shown; the key listener runs on its own goroutine
	opt   geocalc.EvalOptions // Evaluation options, angle mode changes at runtime
	shown string              // Last successful preview of the current line
}

// newREPL creates a session writing results to out.
func newREPL(cfg Config, opt geocalc.EvalOptions, out io.Writer, log zerolog.Logger) *repl {
	return &repl{
		out:  out,
		hist: newHistory(cfg.HistoryLimit),
		log:  log,
		opt:  opt,
	}
}

// options returns a copy of the current evaluation options.
func (r *repl) options() geocalc.EvalOptions {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.opt
}

// setAngleMode switches the angle mode for subsequent evaluations.
func (r *repl) setAngleMode(mode geocalc.AngleMode) {
	r.mu.Lock()
	r.opt.AngleMode = mode
	r.mu.Unlock()

	r.log.Debug().Stringer("mode", mode).Msg("angle mode changed")
	fmt.Fprintf(r.out, "angle mode: %s\n", mode)
}

// handle processes one committed line and reports whether the session ends.
func (r *repl) handle(line string) bool {
	r.mu.Lock()
	r.shown = ""
	r.mu.Unlock()

	line = strings.TrimSpace(line)
	switch {
	case line == "":
		return false
	case strings.HasPrefix(line, ":"):
		return r.command(line)
	default:
		r.evaluate(line)
		return false
	}
}

// evaluate evaluates expr, prints the result and records it in the history.
func (r *repl) evaluate(expr string) {
	opt := r.options()
	start := time.Now()

	v, err := geocalc.EvaluateValue(expr, &opt)
	if err != nil {
		r.log.Debug().Err(err).Str("expr", expr).Msg("evaluation failed")
		printError(r.out, expr, err)
		return
	}

	res := geocalc.Format(v, &opt.Format)
	r.last = v
	r.log.Debug().Str("expr", expr).Str("result", res).Dur("took", time.Since(start)).Msg("evaluated")
	r.hist.add(expr, res)
	fmt.Fprintln(r.out, res)
}

// command runs a ":name" command.
func (r *repl) command(line string) bool {
	fields := strings.Fields(line)

	switch fields[0] {
	case ":quit", ":q", ":exit":
		return true

	case ":deg":
		r.setAngleMode(geocalc.Degrees)

	case ":rad":
		r.setAngleMode(geocalc.Radians)

	case ":history":
		if r.hist.len() == 0 {
			fmt.Fprintln(r.out, "history is empty")
			break
		}
		for i, e := range r.hist.entries {
			fmt.Fprintf(r.out, "%3d  %s\n", i+1, e)
		}

	case ":clear":
		r.hist.clear()
		fmt.Fprintln(r.out, "history cleared")

	case ":recall", ":remove":
		n, err := commandIndex(fields)
		if err != nil {
			fmt.Fprintf(r.out, "Error: %v\n", err)
			break
		}

		if fields[0] == ":remove" {
			if !r.hist.remove(n) {
				fmt.Fprintf(r.out, "Error: no history entry %d\n", n)
			}
			break
		}

		entry, ok := r.hist.get(n)
		if !ok {
			fmt.Fprintf(r.out, "Error: no history entry %d\n", n)
			break
		}
		r.evaluate(expressionOf(entry))

	case ":m+", ":m-":
		n, ok := r.last.(geocalc.Number)
		if !ok {
			if r.last == nil {
				fmt.Fprintln(r.out, "Error: no result to store")
			} else {
				fmt.Fprintf(r.out, "Error: memory holds numbers, last result is %s\n", r.last.Kind())
			}
			break
		}
		if fields[0] == ":m+" {
			r.memory += float64(n)
		} else {
			r.memory -= float64(n)
		}
		r.printMemory()

	case ":mr":
		r.printMemory()

	case ":mc":
		r.memory = 0
		r.printMemory()

	case ":help":
		fmt.Fprint(r.out, replHelp)

	default:
		fmt.Fprintf(r.out, "Error: unknown command %s, try :help\n", fields[0])
	}

	return false
}

// printMemory prints the register in seed form so it can be pasted back.
func (r *repl) printMemory() {
	fmt.Fprintf(r.out, "memory: %s\n", geocalc.SeedExpression(geocalc.Number(r.memory)))
}

// commandIndex parses the history index argument of a command.
func commandIndex(fields []string) (int, error) {
	if len(fields) != 2 {
		return 0, fmt.Errorf("%s expects one history index", fields[0])
	}

	n, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, fmt.Errorf("%s: invalid history index %q", fields[0], fields[1])
	}
	return n, nil
}

// preview returns the live result shown under the input line. While the line
// does not evaluate the last successful result stays on screen.
func (r *repl) preview(line string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	expr := strings.TrimSpace(line)
	if expr == "" || strings.HasPrefix(expr, ":") {
		r.shown = ""
		return ""
	}

	res, err := geocalc.Evaluate(expr, &r.opt)
	if err == nil {
		r.shown = "= " + res
	}
	return r.shown
}

// keyListener redraws the preview line after every edit of the input.
func (r *repl) keyListener(w io.Writer) readline.Listener {
	return readline.FuncListener(func(line []rune, pos int, key rune) ([]rune, int, bool) {
		switch key {
		case '\n', '\r', readline.CharDelete, 0:
			return nil, 0, false
		}

		var b strings.Builder
		b.WriteString(escNextLine + escClearLine)
		b.WriteString(r.preview(string(line)))
		b.WriteString(escUpLine + "\r")
		if col := len(prompt) + pos; col > 0 {
			fmt.Fprintf(&b, escRight, col)
		}
		_, _ = io.WriteString(w, b.String())

		return nil, 0, false
	})
}

// run reads lines until :quit, Ctrl-D or Ctrl-C on an empty line.
func (r *repl) run(cfg Config) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     cfg.HistoryFile,
		InterruptPrompt: "^C",
		EOFPrompt:       ":quit",
	})
	if err != nil {
		return fmt.Errorf("readline: %w", err)
	}
	defer func() { _ = rl.Close() }()

	// The preview bypasses rl.Stdout(), which would redraw the prompt.
	r.out = rl.Stdout()
	rl.Config.Listener = r.keyListener(os.Stdout)

	r.log.Debug().Str("history_file", cfg.HistoryFile).Stringer("mode", r.options().AngleMode).Msg("interactive session started")

	for {
		line, err := rl.Readline()
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			if line == "" {
				return nil
			}
			continue
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return err
		}

		// Enter moved the cursor onto the preview line.
		_, _ = io.WriteString(os.Stdout, escClearLine+"\r")

		if r.handle(line) {
			return nil
		}
	}
}
