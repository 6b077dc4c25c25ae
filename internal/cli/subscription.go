package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/wisker-app/wisker/pkg/client"
)

func newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "plan",
		Aliases: []string{"plans"},
		Short:   "Browse the plan catalog",
	}

	cmd.AddCommand(newPlanListCmd())

	return cmd
}

func newPlanListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available plans",
		RunE: func(cmd *cobra.Command, args []string) error {
			plans, err := apiClient.Subscription().ListPlans(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list plans: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(plans)
			}

			table := NewTable("PLAN", "MONTHLY", "YEARLY", "CREDITS/DAY", "NOTES", "SUBJECTS")
			for _, p := range plans {
				table.AddRow(
					p.PlanType,
					fmt.Sprintf("%.0f %s", p.MonthlyPrice, p.Currency),
					fmt.Sprintf("%.0f %s", p.YearlyPrice, p.Currency),
					strconv.Itoa(p.DailyCredits),
					formatLimit(p.NotesLimit),
					formatLimit(p.SubjectsLimit),
				)
			}
			table.Render()
			return nil
		},
	}
}

func newSubscriptionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "subscription",
		Aliases: []string{"sub"},
		Short:   "Manage your subscription",
	}

	cmd.AddCommand(newSubscriptionShowCmd())
	cmd.AddCommand(newSubscriptionUpgradeCmd())
	cmd.AddCommand(newSubscriptionVerifyCmd())
	cmd.AddCommand(newSubscriptionCancelCmd())
	cmd.AddCommand(newSubscriptionPromoCmd())

	return cmd
}

func newSubscriptionShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current subscription and credit balance",
		RunE: func(cmd *cobra.Command, args []string) error {
			ent, err := apiClient.Subscription().Get(context.Background())
			if err != nil {
				return fmt.Errorf("failed to get subscription: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(ent)
			}

			fmt.Printf("Plan:    %s\n", ent.PlanType)
			fmt.Printf("Credits: %d of %d left today\n", ent.CreditsRemaining, ent.DailyCredits)
			if ent.SubscriptionStatus != "" {
				fmt.Printf("Status:  %s\n", ent.SubscriptionStatus)
			}
			if ent.SubscriptionEndDate != nil {
				fmt.Printf("Renews:  %s\n", ent.SubscriptionEndDate.Format("2006-01-02"))
			}
			return nil
		},
	}
}

func newSubscriptionUpgradeCmd() *cobra.Command {
	var period, promoCode string

	cmd := &cobra.Command{
		Use:       "upgrade <plan>",
		Short:     "Start checkout for a paid plan",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"PRO", "PREMIUM"},
		RunE: func(cmd *cobra.Command, args []string) error {
			checkout, err := apiClient.Subscription().Checkout(context.Background(), client.CheckoutRequest{
				PlanType:  args[0],
				Period:    period,
				PromoCode: promoCode,
			})
			if err != nil {
				return fmt.Errorf("checkout failed: %w", err)
			}

			fmt.Printf("Complete payment at:\n  %s\n\n", checkout.CheckoutURL)
			fmt.Printf("Then run: wisker subscription verify %s\n", checkout.SessionID)
			return nil
		},
	}

	cmd.Flags().StringVar(&period, "period", "monthly", "billing period: monthly or yearly")
	cmd.Flags().StringVar(&promoCode, "promo", "", "promo code")

	return cmd
}

func newSubscriptionVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <session-id>",
		Short: "Verify a checkout session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := apiClient.Subscription().VerifySession(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("verification failed: %w", err)
			}

			if status.Paid {
				fmt.Printf("Payment confirmed, %s is active\n", status.PlanType)
			} else {
				fmt.Println("Payment not completed yet")
			}
			return nil
		},
	}
}

func newSubscriptionCancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel",
		Short: "Downgrade to the FREE plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			ent, err := apiClient.Subscription().Cancel(context.Background())
			if err != nil {
				return fmt.Errorf("cancellation failed: %w", err)
			}

			fmt.Printf("Subscription canceled, now on %s\n", ent.PlanType)
			return nil
		},
	}
}

func newSubscriptionPromoCmd() *cobra.Command {
	var planType string

	cmd := &cobra.Command{
		Use:   "promo <code>",
		Short: "Validate a promo code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			validation, err := apiClient.Subscription().ValidatePromo(context.Background(), args[0], planType)
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}

			if validation.Valid {
				fmt.Printf("Promo code %s is valid for %s\n", args[0], planType)
			} else {
				fmt.Printf("Invalid: %s\n", validation.Reason)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&planType, "plan", "PRO", "plan to validate against")

	return cmd
}

func newStreakCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "streak",
		Short: "Show your study streak",
		RunE: func(cmd *cobra.Command, args []string) error {
			streak, err := apiClient.Subscription().GetStreak(context.Background())
			if err != nil {
				return fmt.Errorf("failed to get streak: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(streak)
			}

			fmt.Printf("Current streak: %d days\n", streak.CurrentStreak)
			fmt.Printf("Longest streak: %d days\n", streak.LongestStreak)
			if streak.LastActivityDate != nil {
				fmt.Printf("Last activity:  %s\n", streak.LastActivityDate.Format("2006-01-02"))
			}
			return nil
		},
	}
}
