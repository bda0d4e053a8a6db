package main

import (
	"fmt"

	register "github.com/ideamans/go-register"
	"github.com/ideamans/go-register/internal/backend"
	"github.com/ideamans/go-register/internal/config"
	"github.com/ideamans/go-register/internal/console"
	"github.com/ideamans/go-register/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app carries what every subcommand needs once flags are parsed
type app struct {
	v          *viper.Viper
	configFile string
	cfg        *config.Config
}

// flagKeys maps persistent flag names to configuration keys
var flagKeys = map[string]string{
	"file":           "file",
	"backend":        "backend",
	"sheet":          "sheet",
	"table":          "table",
	"spreadsheet-id": "spreadsheet_id",
	"credentials":    "credentials",
	"max-retries":    "max_retries",
	"diff":           "diff",
	"log-level":      "log.level",
	"log-format":     "log.format",
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.NewViper()}

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Keep a small table of personal records",
		Long: `register loads a table of records (a header row plus one row per
record) and serves a menu to list, add, edit, delete and search them.
Changes are written back only after you confirm the preview.

The table lives in a plain comma-separated text file by default. Other
backends keep it in a CSV file, an Excel workbook, a SQLite database or a
Google Sheets spreadsheet.

Settings come from flags, REGISTER_* environment variables (a .env file is
read first) and register.yaml in the working directory or
$XDG_CONFIG_HOME/register, in that order.`,
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		Args:              cobra.NoArgs,
		PersistentPreRunE: a.setup,
		RunE:              a.runInteractive,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "config file (default: search for register.yaml)")
	pf.String("file", "", "backing file (default personalregister.csv)")
	pf.String("backend", "", "backend: text, csv, xlsx, sqlite or sheets (default: from the file extension)")
	pf.String("sheet", "", "sheet name for xlsx and sheets (default Register)")
	pf.String("table", "", "table name for sqlite (default register)")
	pf.String("spreadsheet-id", "", "Google Sheets spreadsheet ID")
	pf.String("credentials", "", "Google service account key file")
	pf.Int("max-retries", 0, "retries for failed loads and saves")
	pf.Bool("diff", false, "show a unified diff before saving")
	pf.String("log-level", "", "log level: debug, info, warn, error (default warn)")
	pf.String("log-format", "", "log format: text or json (default text)")

	for name, key := range flagKeys {
		// Lookup cannot fail for flags defined above
		_ = a.v.BindPFlag(key, pf.Lookup(name))
	}

	cmd.AddCommand(
		newListCmd(a),
		newStatsCmd(a),
		newSearchCmd(a),
		newExportCmd(a),
		newConfigCmd(a),
	)
	return cmd
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.v, a.configFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logging.Setup(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
	return nil
}

// openStore builds the configured backend and loads its table
func (a *app) openStore(cmd *cobra.Command) (*register.Store, *backend.Backend, error) {
	b, err := backend.Open(cmd.Context(), a.cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", config.ErrInvalidConfig, err)
	}

	store := b.NewStore()
	if err := store.Load(cmd.Context()); err != nil {
		return nil, nil, err
	}
	return store, b, nil
}

func (a *app) runInteractive(cmd *cobra.Command, args []string) error {
	store, b, err := a.openStore(cmd)
	if err != nil {
		return err
	}

	var opts []console.Option
	if a.cfg.Diff {
		opts = append(opts, console.WithDiff(b.Name))
	}

	return console.New(store, cmd.InOrStdin(), cmd.OutOrStdout(), opts...).Run(cmd.Context())
}
