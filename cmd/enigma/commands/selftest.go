package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func selftestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "selftest",
		Short: "Run fixed round trips on the built-in default machine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := wire.Cipher.SelfTest()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			failed := 0
			for _, r := range results {
				status := "PASS"
				if !r.Passed {
					status = "FAIL"
					failed++
				}
				fmt.Fprintf(out, "%s  %-16s [%s] %q -> %q -> %q\n", status, r.Name, r.Mode, r.Input, r.Output, r.Replay)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d self-test cases failed", failed, len(results))
			}
			fmt.Fprintf(out, "all %d cases passed\n", len(results))
			return nil
		},
	}
}
