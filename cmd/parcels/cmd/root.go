package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/parcelindex/parcels"
	"github.com/parcelindex/parcels/internal/config"
	"github.com/parcelindex/parcels/internal/loader"
	logger "github.com/parcelindex/parcels/internal/logger"
	"github.com/parcelindex/parcels/internal/render"
)

var parcelsDescription = `
parcels loads shipment records from a seed file of
"destination, weight, valuation" lines into an in-memory index keyed by
destination country, then answers lookups about one country at a time.
`

// app carries the state shared by every subcommand of one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	idx     *parcels.Index
}

// newRootCommand builds the parcels command tree. The caller must call
// teardown on the returned app once the command has run, whether or not it
// failed.
func newRootCommand() (*cobra.Command, *app) {
	a := &app{v: viper.New()}
	config.SetDefaults(a.v)
	defaults := config.New()

	rootCmd := &cobra.Command{
		Use:               "parcels <command> [flags]",
		Short:             "query parcels by destination country",
		Long:              parcelsDescription,
		DisableAutoGenTag: true,
		SilenceUsage:      true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (yaml)")
	flags.StringP("file", "f", defaults.File, "seed file of parcel records")
	flags.String("collision", defaults.Collision, "bucket collision policy: separate or shared")
	flags.Bool("color", defaults.Color, "style output when writing to a terminal")
	flags.BoolP("verbose", "v", defaults.Log.Verbose, "log at debug level")
	flags.Bool("console", defaults.Log.Console, "log to stderr instead of files")
	flags.String("logdir", defaults.Log.Dir, "directory of rotated log files")

	for key, name := range map[string]string{
		"file":        "file",
		"collision":   "collision",
		"color":       "color",
		"log.verbose": "verbose",
		"log.console": "console",
		"log.dir":     "logdir",
	} {
		if err := a.v.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(fmt.Errorf("bind flag %s: %w", name, err))
		}
	}

	rootCmd.AddCommand(
		a.newListCmd(),
		a.newFindCmd(),
		a.newHeavierCmd(),
		a.newLighterCmd(),
		a.newTotalsCmd(),
		a.newCheapestCmd(),
		a.newLightestCmd(),
		a.newStatsCmd(),
		a.newMenuCmd(),
	)
	return rootCmd, a
}

// Execute runs the parcels command. This is called by main.main().
func Execute() {
	rootCmd, a := newRootCommand()
	err := rootCmd.Execute()
	if err != nil {
		logger.Errorf("%v", err)
	}
	a.teardown()
	if err != nil {
		os.Exit(1)
	}
}

// setup loads configuration, installs loggers and seeds the index.
func (a *app) setup() error {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	rotate := logger.LogRotateConfig{
		MaxSize:    cfg.Log.MaxSize,
		MaxAge:     cfg.Log.MaxAge,
		MaxBackups: cfg.Log.MaxBackups,
	}
	if err := logger.InitParcels(cfg.Log.Verbose, cfg.Log.Console, cfg.Log.Dir, rotate); err != nil {
		return fmt.Errorf("init parcels logger: %w", err)
	}

	policy, err := cfg.Policy()
	if err != nil {
		return err
	}
	a.idx = parcels.New(parcels.WithCollisionPolicy(policy))

	res, err := loader.LoadFile(cfg.File, a.idx)
	if err != nil {
		return err
	}
	logger.With("file", cfg.File, "policy", policy.String()).Infof("index ready with %d parcels", res.Loaded)
	return nil
}

func (a *app) teardown() {
	if a.idx != nil {
		a.idx.Destroy()
	}
	logger.Sync()
}

func (a *app) printer(cmd *cobra.Command) *render.Printer {
	return render.New(cmd.OutOrStdout(), a.cfg.Color)
}
