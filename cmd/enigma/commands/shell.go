package commands

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"enigmasim/internal/domain"
	"enigmasim/internal/protocol/enigma"
)

// shellChoice is one entry of the interactive menu.
type shellChoice int

const (
	shellLoadRotors shellChoice = iota + 1
	shellLoadPlugboard
	shellLoadReflector
	shellSettings
	shellToggleCodec
	shellSetPositions
	shellProcess
	shellQuit
)

var shellMenu = []struct {
	choice shellChoice
	label  string
}{
	{shellLoadRotors, "Load rotors"},
	{shellLoadPlugboard, "Load plugboard"},
	{shellLoadReflector, "Load reflector"},
	{shellSettings, "Show settings"},
	{shellToggleCodec, "Toggle symbol codec"},
	{shellSetPositions, "Set rotor positions"},
	{shellProcess, "Process text"},
	{shellQuit, "Quit"},
}

// shell is the state of one interactive session.
type shell struct {
	m    *enigma.Machine
	mode domain.CodecMode
	in   *bufio.Scanner
	out  io.Writer
}

func shellCmd() *cobra.Command {
	var mf machineFlags
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Interactive menu for configuring and running the machine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := mf.build()
			if err != nil {
				return err
			}
			sh := &shell{m: m, in: bufio.NewScanner(cmd.InOrStdin()), out: cmd.OutOrStdout()}
			return sh.run()
		},
	}
	mf.register(cmd.Flags())
	return cmd
}

func (sh *shell) run() error {
	for {
		sh.printMenu()
		line, ok := sh.prompt("Choice: ")
		if !ok {
			return sh.in.Err()
		}
		n, err := strconv.Atoi(line)
		if err != nil || n < int(shellLoadRotors) || n > int(shellQuit) {
			fmt.Fprintf(sh.out, "Unknown choice %q.\n", line)
			continue
		}
		choice := shellChoice(n)
		if choice == shellQuit {
			return nil
		}
		if err := sh.dispatch(choice); err != nil {
			// Configuration errors leave the machine unchanged; report and carry on.
			fmt.Fprintf(sh.out, "Error: %v\n", err)
		}
	}
}

func (sh *shell) dispatch(choice shellChoice) error {
	switch choice {
	case shellLoadRotors:
		line, ok := sh.prompt("Rotor indices, leftmost first (e.g. 1,2,3): ")
		if !ok {
			return nil
		}
		indices, err := parseIndices(line)
		if err != nil {
			return err
		}
		cat, err := wire.Cipher.Catalog()
		if err != nil {
			return err
		}
		return sh.m.LoadRotors(cat.Rotors, indices)

	case shellLoadPlugboard:
		line, ok := sh.prompt(`Plugboard name (empty for "1"): `)
		if !ok {
			return nil
		}
		cat, err := wire.Cipher.Catalog()
		if err != nil {
			return err
		}
		spec, err := cat.Plugboard(line)
		if err != nil {
			return err
		}
		return sh.m.LoadPlugboard(spec)

	case shellLoadReflector:
		line, ok := sh.prompt("Reflector name (empty for the first): ")
		if !ok {
			return nil
		}
		cat, err := wire.Cipher.Catalog()
		if err != nil {
			return err
		}
		spec, err := cat.Reflector(line)
		if err != nil {
			return err
		}
		return sh.m.SetReflector(spec)

	case shellSettings:
		if err := printSettings(sh.out, sh.m.Settings()); err != nil {
			return err
		}
		fmt.Fprintf(sh.out, "Mode:        %s\n", sh.mode)
		return nil

	case shellToggleCodec:
		if sh.mode == domain.CodecAuto {
			sh.mode = domain.CodecRaw
		} else {
			sh.mode = domain.CodecAuto
		}
		fmt.Fprintf(sh.out, "Mode is now %s.\n", sh.mode)
		return nil

	case shellSetPositions:
		line, ok := sh.prompt("Positions, leftmost first (e.g. AAA): ")
		if !ok {
			return nil
		}
		return sh.m.SetRotorPositions(line)

	case shellProcess:
		line, ok := sh.prompt("Text: ")
		if !ok {
			return nil
		}
		fmt.Fprintf(sh.out, "Result: %s\n", wire.Cipher.Process(sh.m, line, sh.mode))
		return nil

	default:
		return fmt.Errorf("unhandled menu choice %d", choice)
	}
}

func (sh *shell) printMenu() {
	fmt.Fprintln(sh.out)
	for _, e := range shellMenu {
		fmt.Fprintf(sh.out, "%d. %s\n", e.choice, e.label)
	}
}

// prompt writes label and reads one trimmed line. ok is false at end of input.
func (sh *shell) prompt(label string) (string, bool) {
	fmt.Fprint(sh.out, label)
	if !sh.in.Scan() {
		fmt.Fprintln(sh.out)
		return "", false
	}
	return strings.TrimSpace(sh.in.Text()), true
}

// parseIndices parses "1,2,3" or "1 2 3".
func parseIndices(s string) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, &domain.ConfigError{Kind: domain.ErrConfigurationNotFound, Component: "rotor", Name: f, Reason: "not a number"}
		}
		out = append(out, n)
	}
	return out, nil
}
