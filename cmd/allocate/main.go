// Command allocate plans warehouse shipments for an order read from a YAML or JSON file.
//
//	allocate plan --file order.yaml
//	allocate plan --file - --format json --strict < order.json
//	allocate validate --file order.yaml
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/guttosm/inventory-allocator/internal/logger"
	"github.com/jessevdk/go-flags"
)

// Exit codes.
const (
	exitOK          = 0
	exitUnfulfilled = 1
	exitInvalid     = 2
)

// LogConfig configures the CLI's zerolog output, written to stderr.
type LogConfig struct {
	Level  string `long:"level" env:"LEVEL" default:"warn" choice:"debug" choice:"info" choice:"warn" choice:"error" description:"Logging level"`
	Pretty bool   `long:"pretty" env:"PRETTY" description:"Human readable log output"`
}

type baseConfig struct {
	Log LogConfig `group:"Logging" namespace:"log" env-namespace:"LOG"`
}

// exitError carries the process exit code out of a command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func invalidInput(err error) error {
	return &exitError{code: exitInvalid, err: err}
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run parses args, executes the selected command and returns the exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var base baseConfig
	parser := flags.NewParser(&base, flags.HelpFlag|flags.PassDoubleDash)
	parser.ShortDescription = "Split orders across the fewest warehouses"

	streams := ioConfig{stdin: stdin, stdout: stdout}
	mustAddCmd(parser, "plan", "Plan shipments for an order",
		"Reads an order and a cost-ordered warehouse list and prints the minimum-warehouse shipment plan.",
		&cmdPlan{io: streams})
	mustAddCmd(parser, "validate", "Validate an order document",
		"Checks an order document without planning it.",
		&cmdValidate{io: streams})

	parser.CommandHandler = func(cmd flags.Commander, args []string) error {
		if cmd == nil {
			return nil
		}
		logger.Configure(logger.Options{Level: base.Log.Level, Pretty: base.Log.Pretty, Output: stderr})
		return cmd.Execute(args)
	}

	if _, err := parser.ParseArgs(args); err != nil {
		return exitCode(err, stdout, stderr)
	}
	return exitOK
}

func exitCode(err error, stdout, stderr io.Writer) int {
	var flagsErr *flags.Error
	if errors.As(err, &flagsErr) {
		if flagsErr.Type == flags.ErrHelp {
			_, _ = fmt.Fprintln(stdout, flagsErr.Message)
			return exitOK
		}
		_, _ = fmt.Fprintln(stderr, flagsErr.Message)
		return exitInvalid
	}

	var exitErr *exitError
	if errors.As(err, &exitErr) {
		_, _ = fmt.Fprintln(stderr, "error:", exitErr.err)
		return exitErr.code
	}

	_, _ = fmt.Fprintln(stderr, "error:", err)
	return exitInvalid
}

func mustAddCmd(parser *flags.Parser, name, short, long string, data interface{}) {
	if _, err := parser.AddCommand(name, short, long, data); err != nil {
		panic(fmt.Sprintf("failed to add command %q: %v", name, err))
	}
}
