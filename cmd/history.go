package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nkapoor/mathex/internal/profile"
	"github.com/nkapoor/mathex/internal/session"
)

var historyCmd = &cobra.Command{
	Use:   "history [session-id]",
	Short: "List past practice sessions, or show one session's questions",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, prof, err := openProfile(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		if len(args) == 1 {
			rec := prof.SessionByID(args[0])
			if rec == nil {
				return fmt.Errorf("no session with ID %q", args[0])
			}
			printSessionDetail(rec)
			return nil
		}

		if len(prof.History) == 0 {
			fmt.Println("No sessions yet.")
			return nil
		}
		for _, rec := range prof.History {
			sum := rec.Summary
			fmt.Printf("%s  %s  %-18s %2d:%02d  %3d questions  %5.1f%% accuracy\n",
				rec.ID,
				rec.StartedAt.Format("2006-01-02 15:04"),
				session.Mode(rec.Settings.Mode).DisplayName(),
				sum.DurationSecs/60, sum.DurationSecs%60,
				len(rec.Details), sum.Accuracy)
		}
		return nil
	},
}

func printSessionDetail(rec *profile.SessionRecord) {
	fmt.Printf("%s  %s  %s\n", rec.ID,
		rec.StartedAt.Format("2006-01-02 15:04"),
		session.Mode(rec.Settings.Mode).DisplayName())
	for _, d := range rec.Details {
		mark := "?"
		switch d.Status {
		case profile.StatusCorrect:
			mark = "+"
		case profile.StatusIncorrect:
			mark = "x"
		case profile.StatusSkipped:
			mark = "-"
		}
		line := fmt.Sprintf("  %s %-28s you: %-10s ans: %s", mark, d.Text, d.UserAnswer, d.Answer)
		if d.TimeMs != nil {
			line += fmt.Sprintf("  %.1fs", float64(*d.TimeMs)/1000)
		}
		fmt.Println(line)
	}
}
