// Package sh provides the ishell backed shells of the command line tools.
package sh

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/abiosoft/ishell"
	"github.com/mattn/go-isatty"
)

// Shell provides ishell backed interactive shell.
type Shell struct {
	Interactive bool
	OutputJSON  bool

	Shell *ishell.Shell
}

const shellKey = "$shell"

var (
	evalOnly   bool
	outputJSON bool
)

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
	flag.BoolVar(&outputJSON, "json", outputJSON, "Print output in JSON.")
}

// New creates a shell with cmds. The shell is interactive unless -e is
// given or stdin is not a terminal.
func New(prompt string, cmds ...*ishell.Cmd) *Shell {
	s := &Shell{
		Interactive: !evalOnly && isatty.IsTerminal(os.Stdin.Fd()),
		OutputJSON:  outputJSON,
		Shell:       ishell.New(),
	}
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt(prompt)
	for _, cmd := range cmds {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// Set stores a value shared by the commands.
func (s *Shell) Set(key string, val any) {
	s.Shell.Set(key, val)
}

// Print prints v as JSON with -json, otherwise in its default format.
func (s *Shell) Print(c *ishell.Context, v any) {
	if !s.OutputJSON {
		c.Println(v)
		return
	}
	out, err := json.Marshal(v)
	if err != nil {
		c.Err(err)
		return
	}
	c.Println(string(out))
}

// Run processes args as one command if any, otherwise runs the shell.
func (s *Shell) Run(args ...string) {
	if len(args) > 0 {
		if err := s.Shell.Process(args...); err != nil {
			log.Fatalln(err)
		}
		return
	}
	if s.Interactive {
		s.Shell.Run()
		return
	}
	log.Fatalln("command expected")
}

// RequireArgs fails the command when fewer than n args are given.
func RequireArgs(c *ishell.Context, n int) bool {
	if len(c.Args) < n {
		c.Err(fmt.Errorf("usage: %s %s", c.Cmd.Name, c.Cmd.Help))
		return false
	}
	return true
}

// FloatArg parses the i-th argument, def is used when it is absent.
func FloatArg(c *ishell.Context, i int, name string, def float64) (float64, error) {
	if i >= len(c.Args) {
		return def, nil
	}
	val, err := strconv.ParseFloat(c.Args[i], 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return val, nil
}

// UintArg parses the i-th argument as an unsigned integer of bits size.
func UintArg(c *ishell.Context, i int, name string, bits int) (uint64, error) {
	if i >= len(c.Args) {
		return 0, fmt.Errorf("%s required", name)
	}
	val, err := strconv.ParseUint(c.Args[i], 0, bits)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return val, nil
}
