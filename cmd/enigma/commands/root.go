package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"enigmasim/internal/app"
)

var (
	home       string
	catalogDir string
	relayURL   string
	relayToken string
	passphrase string
	debug      bool
	noDefaults bool

	wire *app.Wire
)

// Execute runs the enigma CLI with os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the command tree. Flags are rebound on every call so
// each tree starts from defaults.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "enigma",
		Short:        "Rotor cipher machine simulator",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.LoadConfig()
			flags := cmd.Flags()
			if flags.Changed("home") {
				cfg.Home = home
			}
			if flags.Changed("catalog") {
				cfg.CatalogDir = catalogDir
			}
			if flags.Changed("relay") {
				cfg.RelayURL = relayURL
			}
			if flags.Changed("relay-token") {
				cfg.RelayToken = relayToken
			}
			cfg.AllowDefaults = !noDefaults

			level := slog.LevelWarn
			if debug {
				level = slog.LevelDebug
			}
			cfg.Logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			w, err := app.NewWire(cfg)
			if err != nil {
				return err
			}
			wire = w
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&home, "home", "", "state dir (default $ENIGMA_HOME or ~/.enigma)")
	pf.StringVar(&catalogDir, "catalog", "", "catalog dir with rotor/reflector/plugboard files (default <home>/catalog)")
	pf.StringVar(&relayURL, "relay", "", "key sheet relay base URL (e.g. http://127.0.0.1:8080)")
	pf.StringVar(&relayToken, "relay-token", "", "bearer token for publishing to the relay")
	pf.StringVarP(&passphrase, "passphrase", "p", "", "passphrase protecting stored key sheets")
	pf.BoolVar(&debug, "debug", false, "log rotor stepping and signal routing")
	pf.BoolVar(&noDefaults, "no-defaults", false, "fail instead of using built-in rotors for missing catalog files")

	root.AddCommand(
		processCmd(),
		settingsCmd(),
		selftestCmd(),
		shellCmd(),
		keysheetCmd(),
		catalogCmd(),
	)
	return root
}
