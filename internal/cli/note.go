package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/wisker-app/wisker/pkg/client"
)

func newNoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "note",
		Aliases: []string{"notes"},
		Short:   "Manage study notes",
	}

	cmd.AddCommand(newNoteListCmd())
	cmd.AddCommand(newNoteCreateCmd())
	cmd.AddCommand(newNoteShowCmd())
	cmd.AddCommand(newNoteUploadCmd())
	cmd.AddCommand(newNoteDeleteCmd())

	return cmd
}

func newNoteListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <subject-id>",
		Short: "List the notes of a subject",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			subjectID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid subject ID: %s", args[0])
			}

			notes, err := apiClient.Subjects().Notes(context.Background(), subjectID)
			if err != nil {
				return fmt.Errorf("failed to list notes: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(notes)
			}

			table := NewTable("ID", "TITLE", "FILE", "CREATED")
			for _, n := range notes {
				file := "-"
				if n.FileType != nil {
					file = *n.FileType
				}
				table.AddRow(
					strconv.FormatInt(n.ID, 10),
					truncate(n.Title, 40),
					file,
					n.CreatedAt.Format("2006-01-02"),
				)
			}
			table.Render()
			return nil
		},
	}
}

func newNoteCreateCmd() *cobra.Command {
	var subjectID int64
	var content string

	cmd := &cobra.Command{
		Use:   "create <title>",
		Short: "Create a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if subjectID == 0 {
				return fmt.Errorf("--subject is required")
			}

			n, err := apiClient.Notes().Create(context.Background(), client.CreateNoteRequest{
				SubjectID: subjectID,
				Title:     args[0],
				Content:   content,
			})
			if err != nil {
				if apiErr, ok := err.(*client.APIError); ok && apiErr.IsPlanLimitReached() {
					return fmt.Errorf("note limit reached for your plan, upgrade to add more")
				}
				return fmt.Errorf("failed to create note: %w", err)
			}

			fmt.Printf("Created note %q (ID %d)\n", n.Title, n.ID)
			return nil
		},
	}

	cmd.Flags().Int64Var(&subjectID, "subject", 0, "subject ID (required)")
	cmd.Flags().StringVar(&content, "content", "", "note content")

	return cmd
}

func newNoteShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid note ID: %s", args[0])
			}

			n, err := apiClient.Notes().Get(context.Background(), id)
			if err != nil {
				return fmt.Errorf("failed to get note: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(n)
			}

			fmt.Printf("Title:   %s\n", n.Title)
			fmt.Printf("Subject: %d\n", n.SubjectID)
			if n.FileURL != nil {
				fmt.Printf("File:    %s\n", *n.FileURL)
			}
			fmt.Printf("Created: %s\n", n.CreatedAt.Format("2006-01-02 15:04"))
			if n.Content != "" {
				fmt.Println()
				fmt.Println(n.Content)
			}
			return nil
		},
	}
}

func newNoteUploadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upload <id> <file>",
		Short: "Attach a PDF or image to a note",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid note ID: %s", args[0])
			}

			data, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("failed to read file: %w", err)
			}

			contentType := http.DetectContentType(data)
			n, err := apiClient.Notes().Upload(context.Background(), id, filepath.Base(args[1]), contentType, data)
			if err != nil {
				return fmt.Errorf("upload failed: %w", err)
			}

			fmt.Printf("Attached %s to note %d\n", filepath.Base(args[1]), n.ID)
			return nil
		},
	}
}

func newNoteDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a note and its generated tools",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid note ID: %s", args[0])
			}

			if err := apiClient.Notes().Delete(context.Background(), id); err != nil {
				return fmt.Errorf("failed to delete note: %w", err)
			}

			fmt.Printf("Deleted note %d\n", id)
			return nil
		},
	}
}
