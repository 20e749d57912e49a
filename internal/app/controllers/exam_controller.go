package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ShriShintre/Exam-Buddy/internal/app/models"
	"github.com/ShriShintre/Exam-Buddy/internal/app/models/dto"
	"github.com/ShriShintre/Exam-Buddy/internal/app/services"
	"github.com/ShriShintre/Exam-Buddy/internal/pkg/apperrors"
	"github.com/ShriShintre/Exam-Buddy/internal/pkg/flash"
)

// ExamController handles the exam catalog pages
type ExamController struct {
	examService services.ExamService
	flash       *flash.Manager
	logger      zerolog.Logger
}

// NewExamController creates a new ExamController
func NewExamController(examService services.ExamService, flashManager *flash.Manager, logger zerolog.Logger) *ExamController {
	return &ExamController{
		examService: examService,
		flash:       flashManager,
		logger:      logger,
	}
}

// Index renders the exam list with optional search and sort.
func (c *ExamController) Index(ctx *gin.Context) {
	var query dto.ListExamsQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		query = dto.ListExamsQuery{}
	}
	if query.Sort == "" {
		query.Sort = "date"
	}

	exams, err := c.examService.List(ctx, &query)
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to list exams")
		ctx.HTML(http.StatusInternalServerError, "index.html", gin.H{
			"Exams":  []*models.Exam{},
			"Search": query.Search,
			"Sort":   query.Sort,
		})
		return
	}

	ctx.HTML(http.StatusOK, "index.html", gin.H{
		"Exams":  exams,
		"Search": query.Search,
		"Sort":   query.Sort,
		"Flash":  c.flash.Take(ctx),
	})
}

// ShowAddExam renders the add-exam form.
func (c *ExamController) ShowAddExam(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "add_exam.html", gin.H{
		"Flash": c.flash.Take(ctx),
	})
}

// AddExam creates an exam from the submitted form and redirects home.
func (c *ExamController) AddExam(ctx *gin.Context) {
	var req dto.CreateExamRequest
	if err := ctx.ShouldBind(&req); err != nil {
		c.flash.Error(ctx, "Error adding exam. Please try again.")
		ctx.Redirect(http.StatusFound, "/add_exam")
		return
	}

	if _, err := c.examService.Create(ctx, &req); err != nil {
		c.logger.Warn().Err(err).Msg("Failed to add exam")
		c.flash.Error(ctx, "Error adding exam. Please try again.")
		ctx.Redirect(http.StatusFound, "/add_exam")
		return
	}

	c.flash.Success(ctx, "Exam added successfully!")
	ctx.Redirect(http.StatusFound, "/")
}

// ShowEditExam renders the edit form for an existing exam.
func (c *ExamController) ShowEditExam(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "examID")
	if err != nil {
		renderNotFound(ctx)
		return
	}

	exam, err := c.examService.Get(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			renderNotFound(ctx)
			return
		}
		c.logger.Error().Err(err).Int64("examId", id).Msg("Failed to load exam")
		renderNotFound(ctx)
		return
	}

	ctx.HTML(http.StatusOK, "edit_exam.html", gin.H{
		"Exam":  exam,
		"Flash": c.flash.Take(ctx),
	})
}

// EditExam applies a full update to an exam and redirects to its detail
// page.
func (c *ExamController) EditExam(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "examID")
	if err != nil {
		renderNotFound(ctx)
		return
	}

	var req dto.UpdateExamRequest
	if err := ctx.ShouldBind(&req); err != nil {
		c.flash.Error(ctx, "Error updating exam. Please try again.")
		ctx.Redirect(http.StatusFound, "/edit_exam/"+ctx.Param("examID"))
		return
	}

	if err := c.examService.Update(ctx, id, &req); err != nil {
		if apperrors.IsNotFound(err) {
			renderNotFound(ctx)
			return
		}
		c.logger.Warn().Err(err).Int64("examId", id).Msg("Failed to update exam")
		c.flash.Error(ctx, "Error updating exam. Please try again.")
		ctx.Redirect(http.StatusFound, "/edit_exam/"+ctx.Param("examID"))
		return
	}

	c.flash.Success(ctx, "Exam updated successfully!")
	redirectToExam(ctx, id)
}

// DeleteExam removes an exam and everything attached to it.
func (c *ExamController) DeleteExam(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "examID")
	if err != nil {
		renderNotFound(ctx)
		return
	}

	if err := c.examService.Delete(ctx, id); err != nil {
		if apperrors.IsNotFound(err) {
			renderNotFound(ctx)
			return
		}
		c.logger.Error().Err(err).Int64("examId", id).Msg("Failed to delete exam")
		c.flash.Error(ctx, "Error deleting exam. Please try again.")
		ctx.Redirect(http.StatusFound, "/")
		return
	}

	c.flash.Success(ctx, "Exam deleted successfully!")
	ctx.Redirect(http.StatusFound, "/")
}

// Detail renders an exam with its tasks, notes and flashcards.
func (c *ExamController) Detail(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "examID")
	if err != nil {
		renderNotFound(ctx)
		return
	}

	exam, err := c.examService.Get(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			renderNotFound(ctx)
			return
		}
		c.logger.Error().Err(err).Int64("examId", id).Msg("Failed to load exam")
		renderNotFound(ctx)
		return
	}

	ctx.HTML(http.StatusOK, "exam_detail.html", gin.H{
		"Exam":  exam,
		"Flash": c.flash.Take(ctx),
	})
}

// countdownEntry pairs an upcoming exam with the whole days left until it.
type countdownEntry struct {
	Exam     *models.Exam
	DaysLeft int
}

// Countdown renders exams dated today or later, soonest first.
func (c *ExamController) Countdown(ctx *gin.Context) {
	exams, err := c.examService.Upcoming(ctx)
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to list upcoming exams")
		exams = nil
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	entries := make([]countdownEntry, 0, len(exams))
	for _, exam := range exams {
		entries = append(entries, countdownEntry{
			Exam:     exam,
			DaysLeft: int(exam.Date.Sub(today).Hours() / 24),
		})
	}

	ctx.HTML(http.StatusOK, "countdown.html", gin.H{
		"Entries": entries,
		"Flash":   c.flash.Take(ctx),
	})
}
