package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathfacts/internal/export"
	"github.com/abhisek/mathfacts/internal/ui/theme"
)

var exportCmd = &cobra.Command{
	Use:   "export <file.xlsx>",
	Short: "Write a learner's facts and attempt log to an Excel workbook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := requireUser(cmd)
		if err != nil {
			return err
		}

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		data, err := export.Load(cmd.Context(), st, st, userID)
		if err != nil {
			return err
		}
		if err := export.WriteFile(args[0], data); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), theme.Good.Render("Wrote "+args[0]),
			theme.Hint.Render(fmt.Sprintf("(%d facts, %d attempts, %d table facts)",
				len(data.Facts), len(data.Attempts), len(data.Additions))))
		return nil
	},
}
