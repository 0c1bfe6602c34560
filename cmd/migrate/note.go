package main

import (
	"context"
	"fmt"

	"note-quiz/internal/domain"
	"note-quiz/internal/logger"
	"note-quiz/internal/repository"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	noteTitle string
	noteURL   string
)

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Manage note records",
}

var noteAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register a PDF note",
	Long:  "Creates a note row pointing at a PDF path relative to notes.base_dir and prints its ID.",
	RunE:  runNoteAdd,
}

func init() {
	noteAddCmd.Flags().StringVar(&noteTitle, "title", "", "note title")
	noteAddCmd.Flags().StringVar(&noteURL, "url", "", "PDF path relative to notes.base_dir (required)")
	_ = noteAddCmd.MarkFlagRequired("url")
	noteCmd.AddCommand(noteAddCmd)
	rootCmd.AddCommand(noteCmd)
}

func runNoteAdd(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	db, _, err := connect(ctx)
	if err != nil {
		return err
	}
	defer db.Close()
	defer logger.Sync()

	note := &domain.Note{Title: noteTitle, URL: noteURL}
	if err := repository.NewNoteDatabaseAdapter(db).CreateNote(ctx, note); err != nil {
		return err
	}

	logger.Get().Info("Note registered", zap.String("note_id", note.ID), zap.String("url", note.URL))
	fmt.Fprintln(cmd.OutOrStdout(), note.ID)
	return nil
}
