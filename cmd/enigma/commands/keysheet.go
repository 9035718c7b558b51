package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"enigmasim/internal/domain"
	"enigmasim/internal/services/keysheet"
)

func keysheetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "keysheet",
		Aliases: []string{"sheet"},
		Short:   "Manage sealed key sheets",
	}
	cmd.AddCommand(
		keysheetGenerateCmd(),
		keysheetDeriveCmd(),
		keysheetShowCmd(),
		keysheetListCmd(),
		keysheetPublishCmd(),
		keysheetFetchCmd(),
	)
	return cmd
}

// keysheet generate NAME: random settings drawn from the catalog.
func keysheetGenerateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate NAME",
		Short: "Create a random key sheet and store it sealed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			sheet, err := wire.Sheets.GenerateKeySheet(domain.KeySheetName(args[0]))
			if err != nil {
				return err
			}
			return saveAndReport(cmd, sheet)
		},
	}
}

// keysheet derive NAME --password PW: settings reproducible from a password.
func keysheetDeriveCmd() *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "derive NAME",
		Short: "Derive a key sheet from a shared password and store it sealed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				return fmt.Errorf("--password is required")
			}
			if err := requirePassphrase(); err != nil {
				return err
			}
			sheet, err := wire.Sheets.DeriveKeySheet(domain.KeySheetName(args[0]), password)
			if err != nil {
				return err
			}
			return saveAndReport(cmd, sheet)
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "shared password the settings are derived from")
	return cmd
}

func keysheetShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show NAME",
		Short: "Print the settings of a stored key sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			sheet, err := wire.Sheets.LoadKeySheet(passphrase, domain.KeySheetName(args[0]))
			if err != nil {
				return err
			}
			m, err := wire.Cipher.BuildFromSheet(sheet)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Key sheet:   %s\n", sheet.Name)
			return printSettings(out, m.Settings())
		},
	}
}

func keysheetListCmd() *cobra.Command {
	var remote bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored key sheets (or those on the relay with --remote)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				names []domain.KeySheetName
				err   error
			)
			if remote {
				if wire.Relay == nil {
					return keysheet.ErrNoRelay
				}
				names, err = wire.Relay.ListKeySheets(cmd.Context())
			} else {
				names, err = wire.Sheets.ListKeySheets()
			}
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(names) == 0 {
				fmt.Fprintln(out, "no key sheets")
				return nil
			}
			for _, n := range names {
				fmt.Fprintln(out, n)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&remote, "remote", false, "list the relay instead of local storage")
	return cmd
}

func keysheetPublishCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "publish NAME",
		Short: "Upload a sealed key sheet to the relay",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := domain.KeySheetName(args[0])
			if err := wire.Sheets.PublishKeySheet(cmd.Context(), name); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Published key sheet %s.\n", name)
			return nil
		},
	}
}

func keysheetFetchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch NAME",
		Short: "Download a sealed key sheet from the relay and store it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			sheet, err := wire.Sheets.FetchKeySheet(cmd.Context(), passphrase, domain.KeySheetName(args[0]))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Fetched key sheet %s (fingerprint %s).\n",
				sheet.Name, wire.Sheets.FingerprintKeySheet(sheet))
			return nil
		},
	}
}

func requirePassphrase() error {
	if passphrase == "" {
		return fmt.Errorf("passphrase required (-p)")
	}
	return nil
}

func saveAndReport(cmd *cobra.Command, sheet domain.KeySheet) error {
	if err := wire.Sheets.SaveKeySheet(passphrase, sheet); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved key sheet %s (fingerprint %s, positions %s).\n",
		sheet.Name, wire.Sheets.FingerprintKeySheet(sheet), sheet.Positions)
	return nil
}
