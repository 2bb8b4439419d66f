package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Raamakrishnan/ulog/internal/filter"
	"github.com/Raamakrishnan/ulog/internal/output"
	"github.com/Raamakrishnan/ulog/internal/stats"
)

func newSummaryCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "summary LOG",
		Short: "Count the filtered lines of a log by severity and id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadOptions(v)
			if err != nil {
				return err
			}

			log, readErr := readLog(cmd.Context(), opts, args[0])
			if log == nil {
				return readErr
			}

			summary := stats.Summarize(filter.Apply(log, opts.filter))
			if err := output.RenderSummary(cmd.OutOrStdout(), opts.format, summary); err != nil {
				return err
			}
			return readErr
		},
	}
}
