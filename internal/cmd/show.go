package cmd

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Raamakrishnan/ulog/internal/errors"
	"github.com/Raamakrishnan/ulog/internal/filter"
	"github.com/Raamakrishnan/ulog/internal/ingest"
	"github.com/Raamakrishnan/ulog/internal/model"
	"github.com/Raamakrishnan/ulog/internal/output"
)

func newShowCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "show LOG",
		Short: "Print the lines of a log that pass the filter",
		Long: `Parse LOG and print every line that passes the id, severity and
component filters, in file order.

Examples:
  ulog show sim.log --severity error --severity fatal
  ulog show sim.log --id id1 -s fatal
  ulog show sim.log --component 'uvm_test_top.**.scoreboard' -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, v, args[0])
		},
	}
}

// runShow prints the kept lines of path with the configured renderer.
func runShow(cmd *cobra.Command, v *viper.Viper, path string) error {
	opts, err := loadOptions(v)
	if err != nil {
		return err
	}

	log, readErr := readLog(cmd.Context(), opts, path)
	if log == nil {
		return readErr
	}

	renderer := output.New(opts.format, cmd.OutOrStdout())
	for line := range filter.Apply(log, opts.filter) {
		if err := renderer.Render(line); err != nil {
			return errors.WithStackTrace(err)
		}
	}
	return readErr
}

// readLog ingests path with the configured parser and policy. Under the
// collect policy every failure is logged on its own line and the Log is
// returned with an error counting them, so the caller can still print it.
// Any other error yields a nil Log.
func readLog(ctx context.Context, opts *options, path string) (*model.Log, error) {
	reader := ingest.NewReader(opts.parser, opts.policy, logrus.StandardLogger())

	log, err := reader.ReadFile(ctx, path)
	if err == nil {
		return log, nil
	}

	var lerr *ingest.LineError
	if opts.policy == ingest.Collect && errors.As(err, &lerr) {
		failures := errors.Unwrap(err)
		for _, f := range failures {
			logrus.Error(f)
		}
		return log, errors.Errorf("%s: %d malformed line(s)", path, len(failures))
	}
	return nil, err
}
