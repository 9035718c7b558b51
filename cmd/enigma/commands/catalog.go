package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"enigmasim/internal/domain"
)

func catalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect or create the rotor, reflector and plugboard files",
	}
	cmd.AddCommand(catalogInitCmd(), catalogListCmd(), catalogCheckCmd())
	return cmd
}

// catalog init: write the built-in catalog so it can be edited.
func catalogInitCmd() *cobra.Command {
	var (
		format string
		force  bool
	)
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the built-in catalog to the catalog directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := domain.ParseCatalogFormat(format)
			if err != nil {
				return err
			}
			if !force {
				_, err := wire.Catalog.LoadRotors()
				switch {
				case err == nil:
					return fmt.Errorf("catalog already exists in %s (use --force to overwrite)", wire.Catalog.Dir())
				case !errors.Is(err, fs.ErrNotExist):
					return err
				}
			}
			if err := wire.Catalog.SaveCatalog(domain.DefaultCatalog(), f); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s catalog to %s.\n", f, wire.Catalog.Dir())
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", string(domain.CatalogJSON), "file format: json or yaml")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing catalog")
	return cmd
}

func catalogListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the rotors, reflectors and plugboards available",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := wire.Cipher.Catalog()
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "KIND\tINDEX\tNAME\tWIRING\tNOTCH")
			for i, r := range cat.Rotors {
				fmt.Fprintf(tw, "rotor\t%d\t%s\t%s\t%s\n", i+1, r.Name, r.Wiring, r.Notch)
			}
			for _, r := range cat.Reflectors {
				fmt.Fprintf(tw, "reflector\t-\t%s\t%s\t-\n", r.Name, r.Wiring)
			}
			for _, p := range cat.Plugboards {
				fmt.Fprintf(tw, "plugboard\t-\t%s\t%s\t-\n", p.Name, connectionList(p))
			}
			return tw.Flush()
		},
	}
}

func catalogCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate every rotor, reflector and plugboard in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := wire.Cipher.Check()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d rotors, %d reflectors, %d plugboards: ok\n",
				len(cat.Rotors), len(cat.Reflectors), len(cat.Plugboards))
			return nil
		},
	}
}

// connectionList renders a plugboard's connections as sorted pairs.
func connectionList(p domain.PlugboardSpec) string {
	seen := make(map[string]bool)
	var pairs []string
	for a, b := range p.Connections {
		a, b = strings.ToUpper(a), strings.ToUpper(b)
		if b < a {
			a, b = b, a
		}
		if seen[a+b] {
			continue
		}
		seen[a+b] = true
		pairs = append(pairs, a+b)
	}
	if len(pairs) == 0 {
		return "none"
	}
	sort.Strings(pairs)
	return strings.Join(pairs, " ")
}
