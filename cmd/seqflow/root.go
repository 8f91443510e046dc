package main

import (
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/vnykmshr/seqflow/pkg/common/logger"
	"github.com/vnykmshr/seqflow/pkg/config"
)

// app is the state shared by every subcommand once flags are parsed.
type app struct {
	out io.Writer

	configFile string
	envFile    string
	logLevel   string
	parallel   int

	cfg *config.Config
	log zerolog.Logger
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{out: out, log: zerolog.Nop()}

	root := &cobra.Command{
		Use:   "seqflow",
		Short: "Run lazy sequence pipelines from the command line",
		Long: `seqflow builds lazy pipelines over a source and prints the result of the
terminal operation. Sources are demo user data, text files, JSON lines files,
cron schedules, Redis lists, SQLite tables, Kafka topics and S3 buckets.

Settings are read from seqflow.yml, .env and SEQFLOW_* environment variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	root.PersistentFlags().StringVar(&a.configFile, "config", "", "config file (default ./seqflow.yml)")
	root.PersistentFlags().StringVar(&a.envFile, "env-file", "", "dotenv file (default ./.env)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level override (trace, debug, info, warn, error)")
	root.PersistentFlags().IntVarP(&a.parallel, "parallel", "p", -1, "evaluate stateless stages on N workers (0 = configured default)")

	root.AddCommand(
		newUsersCmd(a),
		newLinesCmd(a),
		newJSONLCmd(a),
		newScheduleCmd(a),
		newRedisCmd(a),
		newSQLCmd(a),
		newKafkaCmd(a),
		newS3Cmd(a),
	)
	return root
}

func (a *app) setup() error {
	var opts []config.LoaderOption
	if a.configFile != "" {
		opts = append(opts, config.WithConfigFile(a.configFile))
	}
	if a.envFile != "" {
		opts = append(opts, config.WithEnvFile(a.envFile))
	}

	cfg, err := config.Load(opts...)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if err := cfg.Apply(); err != nil {
		return err
	}

	a.cfg = cfg
	a.log = logger.WithComponent(cfg.Logger(), "cli")
	a.log.Debug().
		Int("workers", cfg.StreamOptions().Workers).
		Bool("metrics", cfg.Metrics.Enabled).
		Msg("configuration loaded")
	return nil
}

// parallelWorkers reports whether --parallel was given and its value.
func (a *app) parallelWorkers() (int, bool) {
	return a.parallel, a.parallel >= 0
}
