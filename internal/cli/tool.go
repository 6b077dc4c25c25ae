package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/wisker-app/wisker/pkg/client"
)

func newToolCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tool",
		Aliases: []string{"tools"},
		Short:   "Generate and manage learning tools",
	}

	cmd.AddCommand(newToolGenerateCmd())
	cmd.AddCommand(newToolListCmd())
	cmd.AddCommand(newToolShowCmd())
	cmd.AddCommand(newToolDeleteCmd())

	return cmd
}

func newToolGenerateCmd() *cobra.Command {
	var noteID int64

	cmd := &cobra.Command{
		Use:       "generate <type>",
		Short:     "Generate a learning tool from a note",
		Long:      "Generate a quiz, flashcards, concept-map or summary from a note. Each generation spends daily credits.",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"quiz", "flashcards", "concept-map", "summary"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if noteID == 0 {
				return fmt.Errorf("--note is required")
			}

			tool, err := apiClient.Tools().Generate(context.Background(), client.GenerateRequest{
				NoteID:   noteID,
				ToolType: args[0],
			})
			if err != nil {
				if apiErr, ok := err.(*client.APIError); ok && apiErr.IsInsufficientCredits() {
					return fmt.Errorf("out of daily credits: %s", apiErr.Message)
				}
				return fmt.Errorf("generation failed: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(tool)
			}

			fmt.Printf("Generated %s (ID %d)\n\n", tool.ToolType, tool.ID)
			fmt.Println(tool.Content)
			return nil
		},
	}

	cmd.Flags().Int64Var(&noteID, "note", 0, "note ID (required)")

	return cmd
}

func newToolListCmd() *cobra.Command {
	var noteID int64

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List generated tools",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			var (
				tools []client.LearningTool
				err   error
			)
			if noteID != 0 {
				tools, err = apiClient.Tools().ListByNote(ctx, noteID)
			} else {
				tools, err = apiClient.Tools().List(ctx)
			}
			if err != nil {
				return fmt.Errorf("failed to list tools: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(tools)
			}

			table := NewTable("ID", "TYPE", "NOTE", "CREATED")
			for _, t := range tools {
				table.AddRow(
					strconv.FormatInt(t.ID, 10),
					t.ToolType,
					strconv.FormatInt(t.NoteID, 10),
					t.CreatedAt.Format("2006-01-02 15:04"),
				)
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().Int64Var(&noteID, "note", 0, "filter by note ID")

	return cmd
}

func newToolShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a tool's content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid tool ID: %s", args[0])
			}

			tool, err := apiClient.Tools().Get(context.Background(), id)
			if err != nil {
				return fmt.Errorf("failed to get tool: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(tool)
			}

			fmt.Printf("Type:    %s\n", tool.ToolType)
			fmt.Printf("Note:    %d\n", tool.NoteID)
			fmt.Printf("Created: %s\n\n", tool.CreatedAt.Format("2006-01-02 15:04"))
			fmt.Println(tool.Content)
			return nil
		},
	}
}

func newToolDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a tool",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid tool ID: %s", args[0])
			}

			if err := apiClient.Tools().Delete(context.Background(), id); err != nil {
				return fmt.Errorf("failed to delete tool: %w", err)
			}

			fmt.Printf("Deleted tool %d\n", id)
			return nil
		},
	}
}
