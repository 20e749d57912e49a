package controllers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ShriShintre/Exam-Buddy/internal/app/services"
	"github.com/ShriShintre/Exam-Buddy/internal/pkg/apperrors"
	"github.com/ShriShintre/Exam-Buddy/internal/pkg/flash"
)

// NoteController handles note upload, download and deletion
type NoteController struct {
	noteService services.NoteService
	flash       *flash.Manager
	logger      zerolog.Logger
}

// NewNoteController creates a new NoteController
func NewNoteController(noteService services.NoteService, flashManager *flash.Manager, logger zerolog.Logger) *NoteController {
	return &NoteController{
		noteService: noteService,
		flash:       flashManager,
		logger:      logger,
	}
}

// Upload attaches an uploaded file to an exam. Rejections surface as
// flash messages on the exam's detail page.
func (c *NoteController) Upload(ctx *gin.Context) {
	examID, err := parseIDParam(ctx, "examID")
	if err != nil {
		renderNotFound(ctx)
		return
	}

	// A missing form file is handled by the service as "no file provided"
	// so the exam existence check still runs first.
	var fileHeader *multipart.FileHeader
	if fh, err := ctx.FormFile("file"); err == nil {
		fileHeader = fh
	}

	_, err = c.noteService.Upload(ctx, examID, fileHeader)
	switch {
	case err == nil:
		c.flash.Success(ctx, "File uploaded successfully!")
	case errors.Is(err, apperrors.ErrExamNotFound):
		renderNotFound(ctx)
		return
	case errors.Is(err, apperrors.ErrNoFileProvided):
		c.flash.Error(ctx, "No file selected")
	case errors.Is(err, apperrors.ErrUnsupportedMedia):
		c.flash.Error(ctx, "Invalid file type. Please upload a supported file format.")
	case errors.Is(err, apperrors.ErrFileTooLarge):
		c.flash.Error(ctx, "File is too large.")
	default:
		c.logger.Error().Err(err).Int64("examId", examID).Msg("Failed to upload note")
		c.flash.Error(ctx, "Error uploading file. Please try again.")
	}

	redirectToExam(ctx, examID)
}

// Download streams a note's file under its original filename.
func (c *NoteController) Download(ctx *gin.Context) {
	noteID, err := parseIDParam(ctx, "noteID")
	if err != nil {
		renderNotFound(ctx)
		return
	}

	note, fullPath, err := c.noteService.Download(ctx, noteID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			renderNotFound(ctx)
			return
		}
		c.logger.Error().Err(err).Int64("noteId", noteID).Msg("Failed to download note")
		ctx.String(http.StatusInternalServerError, "Error downloading file")
		return
	}

	ctx.FileAttachment(fullPath, note.OriginalFilename)
}

// Delete removes a note and its file.
func (c *NoteController) Delete(ctx *gin.Context) {
	noteID, err := parseIDParam(ctx, "noteID")
	if err != nil {
		renderNotFound(ctx)
		return
	}

	examID, err := c.noteService.Delete(ctx, noteID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			renderNotFound(ctx)
			return
		}
		c.logger.Error().Err(err).Int64("noteId", noteID).Msg("Failed to delete note")
		renderNotFound(ctx)
		return
	}

	c.flash.Success(ctx, "Note deleted successfully!")
	redirectToExam(ctx, examID)
}
