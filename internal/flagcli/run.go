package flagcli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// RunOptions carries the process argv and I/O streams into Run.
type RunOptions struct {
	// Args is the argv excluding the program name (typically os.Args[1:]).
	Args []string

	// In/Out/Err override standard I/O. If nil, defaults are used.
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Context is passed to a command handler. Positional args are in Args;
// flag values are read via the pointers returned from FlagSet.Bool/Int at
// command construction time.
type Context struct {
	context.Context

	Command *Command
	Args    []string

	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Run executes root as a CLI program and returns a process exit code:
// 0 on success, 2 on a usage/argument mistake, or whatever code the
// handler's error carries via ExitCoder (1 by default).
func Run(ctx context.Context, root *Command, opts RunOptions) int {
	if root == nil || root.Name == "" {
		panic("flagcli: Run called with an unnamed root command")
	}

	in := opts.In
	if in == nil {
		in = os.Stdin
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	errOut := opts.Err
	if errOut == nil {
		errOut = os.Stderr
	}

	selected, args, parseErr := parseArgv(root, opts.Args, out)
	if parseErr != nil {
		if errors.Is(parseErr, errHelpPrinted) {
			return 0
		}
		printUsageError(selected, parseErr, errOut)
		return 2
	}

	if selected.Run == nil {
		if len(args) == 0 {
			printUsageError(selected, usageErrorf("missing required subcommand"), errOut)
		} else {
			printUsageError(selected, usageErrorf("unknown subcommand: %s", args[0]), errOut)
		}
		return 2
	}

	if selected.Args != nil {
		if err := selected.Args(args); err != nil {
			return exitForError(selected, err, errOut, true)
		}
	}

	c := &Context{Context: ctx, Command: selected, Args: args, In: in, Out: out, Err: errOut}
	if err := selected.Run(c); err != nil {
		return exitForError(selected, err, errOut, false)
	}
	return 0
}

var errHelpPrinted = errors.New("help printed")

func parseArgv(root *Command, argv []string, out io.Writer) (*Command, []string, error) {
	selected := root
	selectionEnded := false
	parsingEnded := false
	var positional []string

	for i := 0; i < len(argv); i++ {
		token := argv[i]

		if parsingEnded {
			positional = append(positional, argv[i:]...)
			break
		}

		if token == "--" {
			parsingEnded = true
			selectionEnded = true
			continue
		}

		if token == "-h" || token == "--help" {
			writeHelp(out, selected)
			return selected, nil, errHelpPrinted
		}

		if isFlagToken(token) {
			active := selected.activeFlags()
			consumed, err := parseFlagToken(active, token, argv, i)
			if err != nil {
				return selected, nil, err
			}
			i += consumed
			continue
		}

		if !selectionEnded {
			if child := selected.childByToken(token); child != nil {
				selected = child
				continue
			}
			selectionEnded = true
		}

		positional = append(positional, token)
	}
	return selected, positional, nil
}

func isFlagToken(token string) bool {
	return strings.HasPrefix(token, "-") && token != "-" // "-" is a valid positional arg (stdin).
}

// parseFlagToken handles --name, --name=value, -n, and -n=value. vscodediff
// only registers single-letter shorthand flags, so unlike a general getopt
// parser this does not support bundling ("-bT") or "-nVALUE" without '='.
func parseFlagToken(active activeFlags, token string, argv []string, idx int) (int, error) {
	nextValue, hasNext := nextTokenValue(argv, idx)
	hasDashDash := hasNext && nextValue == "--"
	var nextPtr *string
	if hasNext {
		nextPtr = &nextValue
	}

	if strings.HasPrefix(token, "--") {
		name, value, hasValue := splitFlagValue(token[2:])
		var valuePtr *string
		if hasValue {
			valuePtr = &value
		}
		consumeNext, err := active.parseAndSet(token, hasDashDash, name, 0, valuePtr, nextPtr)
		return boolToInt(consumeNext), err
	}

	name, value, hasValue := splitFlagValue(token[1:])
	if len(name) != 1 {
		return 0, usageErrorf("unknown flag: %s", token)
	}
	var valuePtr *string
	if hasValue {
		valuePtr = &value
	}
	consumeNext, err := active.parseAndSet(token, hasDashDash, "", rune(name[0]), valuePtr, nextPtr)
	return boolToInt(consumeNext), err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func splitFlagValue(s string) (name, value string, ok bool) {
	if i := strings.IndexByte(s, '='); i >= 0 {
		return s[:i], s[i+1:], true
	}
	return s, "", false
}

func nextTokenValue(argv []string, idx int) (string, bool) {
	if idx+1 >= len(argv) {
		return "", false
	}
	return argv[idx+1], true
}

func exitForError(cmd *Command, err error, errOut io.Writer, isArgsError bool) int {
	var ec ExitCoder
	if errors.As(err, &ec) {
		code := ec.ExitCode()
		switch code {
		case 2:
			printUsageError(cmd, err, errOut)
			return 2
		case 0:
			return 0
		default:
			if msg := err.Error(); msg != "" {
				fmt.Fprintln(errOut, msg)
			}
			return code
		}
	}
	if isArgsError {
		printUsageError(cmd, err, errOut)
		return 2
	}
	if msg := err.Error(); msg != "" {
		fmt.Fprintln(errOut, msg)
	}
	return 1
}

func printUsageError(cmd *Command, err error, errOut io.Writer) {
	msg := usageErrorMessage(err)
	if msg != "" {
		fmt.Fprintln(errOut, msg)
		fmt.Fprintln(errOut)
	}
	writeHelp(errOut, cmd)
}

func usageErrorMessage(err error) string {
	var ue UsageError
	if errors.As(err, &ue) && ue.Message != "" {
		return ue.Message
	}
	if err == nil || errors.Is(err, errHelpPrinted) {
		return ""
	}
	return err.Error()
}
