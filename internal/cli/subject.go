package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/wisker-app/wisker/pkg/client"
)

func newSubjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "subject",
		Aliases: []string{"subjects"},
		Short:   "Manage study subjects",
	}

	cmd.AddCommand(newSubjectListCmd())
	cmd.AddCommand(newSubjectCreateCmd())
	cmd.AddCommand(newSubjectDeleteCmd())

	return cmd
}

func newSubjectListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your subjects",
		RunE: func(cmd *cobra.Command, args []string) error {
			subjects, err := apiClient.Subjects().List(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list subjects: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(subjects)
			}

			table := NewTable("ID", "NAME", "DESCRIPTION", "CREATED")
			for _, s := range subjects {
				table.AddRow(
					strconv.FormatInt(s.ID, 10),
					s.Name,
					truncate(s.Description, 40),
					s.CreatedAt.Format("2006-01-02"),
				)
			}
			table.Render()
			return nil
		},
	}
}

func newSubjectCreateCmd() *cobra.Command {
	var description, color string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a subject",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := apiClient.Subjects().Create(context.Background(), client.CreateSubjectRequest{
				Name:        args[0],
				Description: description,
				Color:       color,
			})
			if err != nil {
				if apiErr, ok := err.(*client.APIError); ok && apiErr.IsPlanLimitReached() {
					return fmt.Errorf("subject limit reached for your plan, upgrade to add more")
				}
				return fmt.Errorf("failed to create subject: %w", err)
			}

			fmt.Printf("Created subject %q (ID %d)\n", s.Name, s.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "subject description")
	cmd.Flags().StringVar(&color, "color", "", "display color (hex)")

	return cmd
}

func newSubjectDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a subject and its notes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid subject ID: %s", args[0])
			}

			if err := apiClient.Subjects().Delete(context.Background(), id); err != nil {
				return fmt.Errorf("failed to delete subject: %w", err)
			}

			fmt.Printf("Deleted subject %d\n", id)
			return nil
		},
	}
}
