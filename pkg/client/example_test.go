package client_test

import (
	"context"
	"fmt"
	"log"

	"github.com/wisker-app/wisker/pkg/client"
)

// Example demonstrates basic usage of the Wisker client
func Example() {
	c := client.NewClient(client.Config{
		BaseURL: "https://api.wisker.app",
	})

	ctx := context.Background()

	loginResp, err := c.Login(ctx, "user@example.com", "password")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Logged in as: %s\n", loginResp.User.Email)

	subjects, err := c.Subjects().List(ctx)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Found %d subjects\n", len(subjects))
}

// ExampleToolService_Generate demonstrates generating a quiz from a note
func ExampleToolService_Generate() {
	c := client.NewClient(client.Config{
		BaseURL: "https://api.wisker.app",
	})

	ctx := context.Background()

	_, err := c.Login(ctx, "user@example.com", "password")
	if err != nil {
		log.Fatal(err)
	}

	quiz, err := c.Tools().Generate(ctx, client.GenerateRequest{
		NoteID:   42,
		ToolType: "quiz",
	})
	if err != nil {
		if apiErr, ok := err.(*client.APIError); ok && apiErr.IsInsufficientCredits() {
			log.Fatal("out of daily credits, upgrade or wait for the reset")
		}
		log.Fatal(err)
	}

	fmt.Printf("Generated %s #%d\n", quiz.ToolType, quiz.ID)
}

// ExampleSubscriptionService_Checkout demonstrates upgrading to a paid plan
func ExampleSubscriptionService_Checkout() {
	c := client.NewClient(client.Config{
		BaseURL: "https://api.wisker.app",
	})

	ctx := context.Background()

	_, err := c.Login(ctx, "user@example.com", "password")
	if err != nil {
		log.Fatal(err)
	}

	checkout, err := c.Subscription().Checkout(ctx, client.CheckoutRequest{
		PlanType:  "PRO",
		Period:    "monthly",
		PromoCode: "EARLYBIRD",
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Pay at: %s\n", checkout.CheckoutURL)

	status, err := c.Subscription().VerifySession(ctx, checkout.SessionID)
	if err != nil {
		log.Fatal(err)
	}
	if status.Paid {
		fmt.Printf("Plan %s is active\n", status.PlanType)
	}
}

// ExampleSubscriptionService_Get demonstrates reading the credit balance
func ExampleSubscriptionService_Get() {
	c := client.NewClient(client.Config{
		BaseURL: "https://api.wisker.app",
	})

	ctx := context.Background()

	_, err := c.Login(ctx, "user@example.com", "password")
	if err != nil {
		log.Fatal(err)
	}

	ent, err := c.Subscription().Get(ctx)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Plan: %s, credits left today: %d\n", ent.PlanType, ent.CreditsRemaining)
}
