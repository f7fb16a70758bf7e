// Package replcmd wires the command-line surface named in spec.md §6: load
// configuration, optionally run a script file, optionally enter the
// interactive prompt loop. It follows the teacher repository's own
// command-package shape (struct-tag flags parsed by mainer.Parser, a single
// Main entry point returning a mainer.ExitCode).
package replcmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/stakvm/stak/internal/config"
)

const binName = "stak"

var (
	shortUsage = fmt.Sprintf(`
usage: %s [<option>...] [<script>]
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [<option>...] [<script>]
       %[1]s -h|--help
       %[1]s -v|--version

Interactive interpreter for the %[1]s expression language.

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.
       -c --config <path>        Load runtime configuration from a YAML file.
       -f --file <path>          Run a script file before exiting, unless
                                 -i is also given.
       -i --interactive          Enter the prompt loop (the default when
                                 no script is given; forces it even when
                                 one is).

Typing 'quit' at the prompt exits the interpreter.
`, binName)
)

// Cmd is the stak entry point: parse args, load config, run a script file
// and/or enter the interactive prompt loop.
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help        bool   `flag:"h,help"`
	Version     bool   `flag:"v,version"`
	ConfigPath  string `flag:"c,config"`
	ScriptPath  string `flag:"f,file"`
	Interactive bool   `flag:"i,interactive"`

	args []string
}

func (c *Cmd) SetArgs(args []string)      { c.args = args }
func (c *Cmd) SetFlags(_ map[string]bool) {}

// Validate lets a bare positional argument (`stak foo.stak`) stand in for
// --file.
func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}
	if c.ScriptPath == "" && len(c.args) > 0 {
		c.ScriptPath = c.args[0]
	}
	return nil
}

// Main parses args, then dispatches to a script run and/or the REPL.
func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{EnvVars: false, EnvPrefix: binName + "_"}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return mainer.InvalidArgs
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success
	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	cfg, err := config.Load(c.ConfigPath)
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "ERROR: %s\n", err)
		return mainer.Failure
	}

	ip := New(cfg, stdio.Stdout, stdio.Stdin)

	if c.ScriptPath != "" {
		if err := ip.RunFile(c.ScriptPath); err != nil {
			fmt.Fprintf(stdio.Stderr, "ERROR: %s\n", err)
			return mainer.Failure
		}
		if !c.Interactive {
			return mainer.Success
		}
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)
	ip.Repl(ctx, stdio.Stdout)
	return mainer.Success
}
