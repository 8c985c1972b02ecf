package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nkapoor/mathex/internal/questiongen"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show lifetime practice statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, prof, err := openProfile(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		g := prof.Global
		fmt.Printf("Sessions:           %d\n", g.Sessions)
		fmt.Printf("Time practiced:     %dm\n", g.TotalTimeSecs/60)
		fmt.Printf("Questions answered: %d\n", g.QuestionsAnswered)
		fmt.Printf("Best streak:        %d\n", g.BestStreak)
		fmt.Printf("Overall accuracy:   %.1f%%\n", g.OverallAccuracy())

		printed := false
		for _, typ := range questiongen.AllTypes() {
			byDiff, ok := prof.Performance[typ]
			if !ok {
				continue
			}
			for _, diff := range questiongen.Tiers() {
				b, ok := byDiff[diff]
				if !ok || b.TotalAttempts == 0 {
					continue
				}
				if !printed {
					fmt.Println("\nMastery:")
					printed = true
				}
				fmt.Printf("  %-14s %-8s %3.0f%% mastery  %3.0f%% accuracy  %d attempts\n",
					typ.DisplayName(), diff.DisplayName(),
					b.Mastery*100, b.Accuracy(), b.TotalAttempts)
			}
		}

		due := prof.DueReviews(time.Now())
		if len(due) > 0 {
			fmt.Println("\nDue for review:")
			for _, d := range due {
				fmt.Printf("  %s (%s) since %s\n",
					d.Type.DisplayName(), d.Difficulty.DisplayName(), d.Due.Format("2006-01-02"))
			}
		}
		return nil
	},
}
