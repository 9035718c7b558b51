package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"enigmasim/internal/domain"
)

// process [text]: run text through the machine.
func processCmd() *cobra.Command {
	var (
		mf         machineFlags
		file       string
		encode     bool
		setting    bool
		testOutput bool
	)
	cmd := &cobra.Command{
		Use:   "process [text...]",
		Short: "Encrypt or decrypt text (the same operation on this machine)",
		Long: "Runs text through the machine. Text comes from the arguments, --file, or stdin.\n" +
			"With --encode, punctuation, digits and lowercase survive the trip: plaintext is\n" +
			"encoded before enciphering and pure A-Z ciphertext is decoded after deciphering.",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args, file)
			if err != nil {
				return err
			}
			m, err := mf.build()
			if err != nil {
				return err
			}
			mode := domain.CodecRaw
			if encode {
				mode = domain.CodecAuto
			}

			out := cmd.OutOrStdout()
			if setting {
				if err := printSettings(out, m.Settings()); err != nil {
					return err
				}
				fmt.Fprintln(out)
			}
			if testOutput {
				output, replay := wire.Cipher.RoundTrip(m, text, mode)
				fmt.Fprintf(out, "Input:  %s\nOutput: %s\nReplay: %s\n", text, output, replay)
				if replay != expectedReplay(text, mode) {
					return fmt.Errorf("replay does not match input")
				}
				fmt.Fprintln(out, "Replay matches input.")
				return nil
			}
			fmt.Fprintln(out, wire.Cipher.Process(m, text, mode))
			return nil
		},
	}
	mf.register(cmd.Flags())
	cmd.Flags().StringVar(&file, "file", "", "read text from a file instead of the arguments")
	cmd.Flags().BoolVar(&encode, "encode", false, "route text through the symbol codec")
	cmd.Flags().BoolVar(&setting, "setting", false, "print the machine settings before the result")
	cmd.Flags().BoolVar(&testOutput, "test-output", false, "also replay the output and check it restores the input")
	return cmd
}

// readInput picks the text from args, then --file, then stdin. A single
// trailing newline from a file or stdin is dropped.
func readInput(cmd *cobra.Command, args []string, file string) (string, error) {
	if len(args) > 0 {
		if file != "" {
			return "", fmt.Errorf("give text either as arguments or with --file, not both")
		}
		return strings.Join(args, " "), nil
	}
	var (
		b   []byte
		err error
	)
	if file != "" {
		b, err = os.ReadFile(file)
	} else {
		b, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return "", err
	}
	s := strings.TrimSuffix(string(b), "\n")
	return strings.TrimSuffix(s, "\r"), nil
}

// expectedReplay is what a faithful replay returns: raw mode upper-cases
// letters, codec mode restores the text exactly.
func expectedReplay(text string, mode domain.CodecMode) string {
	if mode == domain.CodecAuto {
		return text
	}
	return strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' {
			return r - 'a' + 'A'
		}
		return r
	}, text)
}
