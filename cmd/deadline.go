package main

import (
	"fmt"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/lexkit/case-cli/internal/deadline"
)

var (
	deadlineStart  string
	deadlineDays   int
	deadlineRecess bool
)

const deadlineDateLayout = "2006-01-02"

var deadlineCmd = &cobra.Command{
	Use:   "deadline",
	Short: "Compute a procedural due date",
	RunE: func(cmd *cobra.Command, args []string) error {
		start, err := time.Parse(deadlineDateLayout, deadlineStart)
		if err != nil {
			return eris.Wrapf(err, "parse --start (want %s)", deadlineDateLayout)
		}

		res := deadline.Calculate(deadline.Spec{
			Start:        start,
			DurationDays: deadlineDays,
			RecessAdjust: deadlineRecess,
		}, time.Now())

		fmt.Printf("due date: %s\n", res.DueDate.Format(deadlineDateLayout))
		if res.RecessAdjusted {
			fmt.Println("adjusted for judicial recess")
		}
		if res.WeekendAdjusted {
			fmt.Println("adjusted for weekend")
		}
		switch {
		case res.DaysRemaining < 0:
			fmt.Printf("overdue by %d days\n", -res.DaysRemaining)
		default:
			fmt.Printf("%d days remaining\n", res.DaysRemaining)
		}
		return nil
	},
}

func init() {
	deadlineCmd.Flags().StringVar(&deadlineStart, "start", "", "start date (YYYY-MM-DD)")
	deadlineCmd.Flags().IntVar(&deadlineDays, "days", 0, "duration in days")
	deadlineCmd.Flags().BoolVar(&deadlineRecess, "recess", true, "apply the judicial recess adjustment")
	deadlineCmd.MarkFlagRequired("start")
	deadlineCmd.MarkFlagRequired("days")
	rootCmd.AddCommand(deadlineCmd)
}
