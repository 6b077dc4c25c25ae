package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show account summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if getOutputFormat() != "table" {
				summary := map[string]interface{}{}

				if ent, err := apiClient.Subscription().Get(ctx); err == nil {
					summary["subscription"] = ent
				}
				if streak, err := apiClient.Subscription().GetStreak(ctx); err == nil {
					summary["streak"] = streak
				}
				if subjects, err := apiClient.Subjects().List(ctx); err == nil {
					summary["subjects"] = len(subjects)
				}
				if tools, err := apiClient.Tools().List(ctx); err == nil {
					summary["tools"] = len(tools)
				}
				return printOutput(summary)
			}

			fmt.Println("Wisker Account")
			fmt.Println(strings.Repeat("=", 40))

			ent, err := apiClient.Subscription().Get(ctx)
			if err != nil {
				fmt.Printf("  Plan:      (error: %v)\n", err)
			} else {
				fmt.Printf("  Plan:      %s\n", ent.PlanType)
				fmt.Printf("  Credits:   %d of %d left today\n", ent.CreditsRemaining, ent.DailyCredits)
				if ent.SubscriptionEndDate != nil {
					fmt.Printf("  Renews:    %s\n", ent.SubscriptionEndDate.Format("2006-01-02"))
				}
			}

			streak, err := apiClient.Subscription().GetStreak(ctx)
			if err != nil {
				fmt.Printf("  Streak:    (error: %v)\n", err)
			} else {
				fmt.Printf("  Streak:    %d days (best %d)\n", streak.CurrentStreak, streak.LongestStreak)
			}

			subjects, err := apiClient.Subjects().List(ctx)
			if err != nil {
				fmt.Printf("  Subjects:  (error: %v)\n", err)
			} else {
				fmt.Printf("  Subjects:  %d\n", len(subjects))
			}

			tools, err := apiClient.Tools().List(ctx)
			if err != nil {
				fmt.Printf("  Tools:     (error: %v)\n", err)
			} else {
				fmt.Printf("  Tools:     %d generated\n", len(tools))
			}

			return nil
		},
	}
}
