package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ShriShintre/Exam-Buddy/internal/app/models/dto"
	"github.com/ShriShintre/Exam-Buddy/internal/app/services"
	"github.com/ShriShintre/Exam-Buddy/internal/pkg/apperrors"
	"github.com/ShriShintre/Exam-Buddy/internal/pkg/flash"
)

// FlashcardController handles flashcard pages and operations
type FlashcardController struct {
	flashcardService services.FlashcardService
	flash            *flash.Manager
	logger           zerolog.Logger
}

// NewFlashcardController creates a new FlashcardController
func NewFlashcardController(flashcardService services.FlashcardService, flashManager *flash.Manager, logger zerolog.Logger) *FlashcardController {
	return &FlashcardController{
		flashcardService: flashcardService,
		flash:            flashManager,
		logger:           logger,
	}
}

// Index renders the flashcards overview across all exams.
func (c *FlashcardController) Index(ctx *gin.Context) {
	exams, err := c.flashcardService.Overview(ctx)
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to load flashcards overview")
		exams = nil
	}

	ctx.HTML(http.StatusOK, "flashcards.html", gin.H{
		"Exams": exams,
		"Flash": c.flash.Take(ctx),
	})
}

// ByExam renders a single exam's flashcards.
func (c *FlashcardController) ByExam(ctx *gin.Context) {
	examID, err := parseIDParam(ctx, "examID")
	if err != nil {
		renderNotFound(ctx)
		return
	}

	exam, flashcards, err := c.flashcardService.ListByExam(ctx, examID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			renderNotFound(ctx)
			return
		}
		c.logger.Error().Err(err).Int64("examId", examID).Msg("Failed to load flashcards")
		renderNotFound(ctx)
		return
	}

	ctx.HTML(http.StatusOK, "exam_flashcards.html", gin.H{
		"Exam":       exam,
		"Flashcards": flashcards,
		"Flash":      c.flash.Take(ctx),
	})
}

// Add creates a flashcard for the exam named in the path.
func (c *FlashcardController) Add(ctx *gin.Context) {
	examID, err := parseIDParam(ctx, "examID")
	if err != nil {
		renderNotFound(ctx)
		return
	}

	var req dto.CreateFlashcardRequest
	if err := ctx.ShouldBind(&req); err != nil {
		c.flash.Error(ctx, "Error adding flashcard. Please try again.")
		redirectToExamFlashcards(ctx, examID)
		return
	}

	c.createAndRedirect(ctx, examID, &req)
}

// CreateFromForm creates a flashcard for the exam chosen in the form on
// the overview page.
func (c *FlashcardController) CreateFromForm(ctx *gin.Context) {
	var req dto.CreateFlashcardFormRequest
	if err := ctx.ShouldBind(&req); err != nil {
		c.flash.Error(ctx, "Error adding flashcard. Please try again.")
		ctx.Redirect(http.StatusFound, "/flashcards")
		return
	}

	if err := dto.Validate(&req); err != nil {
		c.flash.Error(ctx, "Error adding flashcard. Please try again.")
		ctx.Redirect(http.StatusFound, "/flashcards")
		return
	}

	c.createAndRedirect(ctx, req.ExamID, &dto.CreateFlashcardRequest{
		Topic:   req.Topic,
		Summary: req.Summary,
	})
}

func (c *FlashcardController) createAndRedirect(ctx *gin.Context, examID int64, req *dto.CreateFlashcardRequest) {
	if _, err := c.flashcardService.Create(ctx, examID, req); err != nil {
		if apperrors.IsNotFound(err) {
			renderNotFound(ctx)
			return
		}
		c.logger.Warn().Err(err).Int64("examId", examID).Msg("Failed to add flashcard")
		c.flash.Error(ctx, "Error adding flashcard. Please try again.")
		redirectToExamFlashcards(ctx, examID)
		return
	}

	c.flash.Success(ctx, "Flashcard added successfully!")
	redirectToExamFlashcards(ctx, examID)
}

// Delete removes a flashcard.
func (c *FlashcardController) Delete(ctx *gin.Context) {
	flashcardID, err := parseIDParam(ctx, "flashcardID")
	if err != nil {
		renderNotFound(ctx)
		return
	}

	examID, err := c.flashcardService.Delete(ctx, flashcardID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			renderNotFound(ctx)
			return
		}
		c.logger.Error().Err(err).Int64("flashcardId", flashcardID).Msg("Failed to delete flashcard")
		renderNotFound(ctx)
		return
	}

	c.flash.Success(ctx, "Flashcard deleted successfully!")
	redirectToExamFlashcards(ctx, examID)
}
