package replcmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/stakvm/stak/internal/config"
	"github.com/stakvm/stak/lang/compiler"
	"github.com/stakvm/stak/lang/env"
	"github.com/stakvm/stak/lang/machine"
	"github.com/stakvm/stak/lang/scanner"
)

// quitWord is the literal REPL exit command, checked before the line ever
// reaches the lexer — it is not a language token.
const quitWord = "quit"

// Interp drives one interpreter session: a Machine plus the read-eval loop
// that feeds it, either from a script file or the interactive prompt.
type Interp struct {
	cfg  config.Config
	mach *machine.Machine
}

// New builds an Interp with a fresh base/global environment chain, its
// frame and operand stack depths capped by cfg.
func New(cfg config.Config, stdout io.Writer, stdin io.Reader) *Interp {
	chain := env.NewChain(machine.NewBaseEnv(), machine.NewGlobalEnv(), cfg.EnvDepth)
	return &Interp{cfg: cfg, mach: machine.New(chain, stdout, stdin, cfg.StackDepth)}
}

// RunFile compiles and runs path's contents as a non-interactive script:
// an unterminated string literal is a hard error, not a continuation
// prompt. It stops at the first runtime error.
func (ip *Interp) RunFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	stmts, err := compiler.Compile(string(b), false, path)
	if err != nil {
		return err
	}
	for _, ops := range stmts {
		if err := ip.mach.Run(ops); err != nil {
			return err
		}
	}
	return nil
}

// Repl runs the interactive read-compile-run loop against out, reading
// lines from the same stream the Machine's `input` builtin reads from
// (ip.mach.Stdin) so the two never race over buffered input. It returns
// when the user types `quit`, on EOF, or when ctx is cancelled.
func (ip *Interp) Repl(ctx context.Context, out io.Writer) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		fmt.Fprint(out, ip.cfg.Prompt)
		line, ok := readLine(ip.mach.Stdin)
		if !ok {
			return
		}
		if strings.TrimSpace(line) == quitWord {
			return
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		ip.runLine(out, line)
	}
}

func (ip *Interp) runLine(out io.Writer, line string) {
	s := scanner.New(line, true, "<stdin>")
	s.Continue = func() (string, bool) {
		fmt.Fprint(out, ip.cfg.ContinuationPrompt)
		return readLine(ip.mach.Stdin)
	}

	c, err := compiler.New(s)
	if err != nil {
		fmt.Fprintf(out, "ERROR: %s\n", err)
		return
	}
	stmts, err := c.CompileAll()
	if err != nil {
		fmt.Fprintf(out, "ERROR: %s\n", err)
		return
	}
	for _, ops := range stmts {
		if err := ip.mach.Run(ops); err != nil {
			fmt.Fprintf(out, "ERROR: %s\n", err)
			return
		}
	}
}

// readLine reads one line, trimming its terminator. ok is false only when
// no bytes at all were read before EOF.
func readLine(r *bufio.Reader) (line string, ok bool) {
	line, err := r.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	return strings.TrimRight(line, "\r\n"), true
}
