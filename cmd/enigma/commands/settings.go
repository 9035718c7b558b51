package commands

import "github.com/spf13/cobra"

func settingsCmd() *cobra.Command {
	var mf machineFlags
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Print the resolved machine settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := mf.build()
			if err != nil {
				return err
			}
			return printSettings(cmd.OutOrStdout(), m.Settings())
		},
	}
	mf.register(cmd.Flags())
	return cmd
}
