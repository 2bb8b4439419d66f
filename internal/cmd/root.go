package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Raamakrishnan/ulog/internal/errors"
)

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd(viper.GetViper()).ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		if logrus.IsLevelEnabled(logrus.DebugLevel) {
			fmt.Fprintln(os.Stderr, errors.ErrorStack(err))
		}
		stop()
		os.Exit(1)
	}
}

// NewRootCmd builds the command tree. Flags are bound to v, which also reads
// the config file and ULOG_* environment variables.
func NewRootCmd(v *viper.Viper) *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "ulog",
		Short: "ulog — UVM log filter",
		Long: `ulog parses UVM simulation logs into structured records and filters
them by report id, severity and component.

Lines that do not follow the UVM report grammar are skipped with a
diagnostic unless --on-error says otherwise.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initConfig(v, cfgFile); err != nil {
				return err
			}
			return setupLogging(cmd, v)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "config file (default: $HOME/.ulog.yaml)")
	flags.StringSlice(keyID, nil, "keep lines with this report id (repeatable)")
	flags.StringSliceP(keySeverity, "s", nil, "keep lines with this severity: info, warning, error, fatal (repeatable)")
	flags.StringSlice(keyComponent, nil, "keep lines whose component matches this pattern, e.g. uvm_test_top.**.driver (repeatable)")
	flags.StringP(keyOutput, "o", "text", "output format: text, raw, json")
	flags.Bool(keyAliases, false, "accept lowercase severity aliases (info, warn, ...) in the log")
	flags.String(keyOnError, "skip", "malformed line policy: skip, fail, collect")
	flags.String(keyNoFilter, "all", "lines kept when no filter is given: all, none")
	flags.String(keyLogLevel, "warn", "diagnostic log level: debug, info, warn, error")

	for _, name := range []string{keyID, keySeverity, keyComponent, keyOutput, keyAliases, keyOnError, keyNoFilter, keyLogLevel} {
		cobra.CheckErr(v.BindPFlag(name, flags.Lookup(name)))
	}

	rootCmd.AddCommand(
		newShowCmd(v),
		newViewCmd(v),
		newFollowCmd(v),
		newSummaryCmd(v),
	)

	return rootCmd
}

func initConfig(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		v.AddConfigPath(home)
		v.AddConfigPath(".")
		v.SetConfigName(".ulog")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("ulog")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	// A missing default config file is fine; an explicit one must load.
	if err := v.ReadInConfig(); err != nil && cfgFile != "" {
		return errors.WithStackTraceAndPrefix(err, "reading config %s", cfgFile)
	}
	return nil
}

func setupLogging(cmd *cobra.Command, v *viper.Viper) error {
	level, err := logrus.ParseLevel(v.GetString(keyLogLevel))
	if err != nil {
		return errors.WithStackTrace(err)
	}
	logrus.SetOutput(cmd.ErrOrStderr())
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	if used := v.ConfigFileUsed(); used != "" {
		logrus.WithField("config", used).Debug("using config file")
	}
	return nil
}
