package cmd

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Raamakrishnan/ulog/internal/errors"
	"github.com/Raamakrishnan/ulog/internal/ingest"
	"github.com/Raamakrishnan/ulog/internal/output"
	"github.com/Raamakrishnan/ulog/internal/stats"
	"github.com/Raamakrishnan/ulog/internal/tailer"
	"github.com/Raamakrishnan/ulog/internal/watcher"
)

func newFollowCmd(v *viper.Viper) *cobra.Command {
	var (
		fromStart   bool
		withSummary bool
	)

	cmd := &cobra.Command{
		Use:   "follow LOG",
		Short: "Follow a running simulation log",
		Long: `Watch LOG (a path or a glob matching exactly one file) and print the
lines appended to it that pass the filters, until interrupted.

Examples:
  ulog follow sim.log -s error -s fatal
  ulog follow "regress/**/seed_42/sim.log" --from-start --summary`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadOptions(v)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			logger := logrus.StandardLogger()

			// --- Initialize watcher ---
			w, err := watcher.New(args[0], logger)
			if err != nil {
				return err
			}
			logger.WithField("source", w.Path()).Info("following log")

			// --- Pipeline: watcher → tailer → parser ---
			t := tailer.New(w, fromStart, logger)
			stream := ingest.NewReader(opts.parser, opts.policy, logger).Stream(t.Lines())

			go w.Start(ctx)
			go t.Start(ctx)
			go stream.Start(ctx)

			// --- Render output ---
			renderer := output.New(opts.format, cmd.OutOrStdout())
			agg := stats.New()
			for line := range stream.Lines() {
				if !opts.filter.Keep(line) {
					continue
				}
				agg.Record(line)
				if err := renderer.Render(line); err != nil {
					return errors.WithStackTrace(err)
				}
			}

			if withSummary {
				fmt.Fprintln(cmd.OutOrStdout())
				if err := output.RenderSummary(cmd.OutOrStdout(), opts.format, agg.Snapshot()); err != nil {
					return err
				}
			}

			if n := stream.Skipped(); n > 0 {
				logger.WithField("source", w.Path()).Infof("%d malformed line(s) skipped", n)
			}
			return stream.Err()
		},
	}

	cmd.Flags().BoolVar(&fromStart, "from-start", false, "print the existing content before following")
	cmd.Flags().BoolVar(&withSummary, "summary", false, "print a report summary of the followed lines on exit")

	return cmd
}
