package cmd

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Raamakrishnan/ulog/internal/filter"
	"github.com/Raamakrishnan/ulog/internal/output"
	"github.com/Raamakrishnan/ulog/internal/viewer"
)

func newViewCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "view LOG",
		Short: "Browse the filtered lines of a log in a scroll-back pager",
		Long: `Parse LOG and open the lines that pass the filters in a full-screen
pager. When standard output is not a terminal the lines are printed as
with "ulog show".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
				return runShow(cmd, v, args[0])
			}

			opts, err := loadOptions(v)
			if err != nil {
				return err
			}

			log, readErr := readLog(cmd.Context(), opts, args[0])
			if log == nil {
				return readErr
			}

			styles := output.NewStyles(lipgloss.DefaultRenderer())
			var lines []string
			for line := range filter.Apply(log, opts.filter) {
				text, err := output.Sprint(opts.format, styles, line)
				if err != nil {
					return err
				}
				lines = append(lines, text)
			}

			if err := viewer.Run(cmd.Context(), args[0], lines); err != nil {
				return err
			}
			return readErr
		},
	}
}
