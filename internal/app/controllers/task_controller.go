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

// TaskController handles task operations and the progress endpoint
type TaskController struct {
	taskService services.TaskService
	flash       *flash.Manager
	logger      zerolog.Logger
}

// NewTaskController creates a new TaskController
func NewTaskController(taskService services.TaskService, flashManager *flash.Manager, logger zerolog.Logger) *TaskController {
	return &TaskController{
		taskService: taskService,
		flash:       flashManager,
		logger:      logger,
	}
}

// AddTask creates a task for an exam and redirects back to its detail page.
func (c *TaskController) AddTask(ctx *gin.Context) {
	examID, err := parseIDParam(ctx, "examID")
	if err != nil {
		renderNotFound(ctx)
		return
	}

	var req dto.CreateTaskRequest
	if err := ctx.ShouldBind(&req); err != nil {
		c.flash.Error(ctx, "Error adding task. Please try again.")
		redirectToExam(ctx, examID)
		return
	}

	if _, err := c.taskService.Create(ctx, examID, &req); err != nil {
		if apperrors.IsNotFound(err) {
			renderNotFound(ctx)
			return
		}
		c.logger.Warn().Err(err).Int64("examId", examID).Msg("Failed to add task")
		c.flash.Error(ctx, "Error adding task. Please try again.")
		redirectToExam(ctx, examID)
		return
	}

	c.flash.Success(ctx, "Task added successfully!")
	redirectToExam(ctx, examID)
}

// ToggleTask flips a task's completion flag.
func (c *TaskController) ToggleTask(ctx *gin.Context) {
	taskID, err := parseIDParam(ctx, "taskID")
	if err != nil {
		renderNotFound(ctx)
		return
	}

	examID, err := c.taskService.Toggle(ctx, taskID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			renderNotFound(ctx)
			return
		}
		c.logger.Error().Err(err).Int64("taskId", taskID).Msg("Failed to toggle task")
		renderNotFound(ctx)
		return
	}

	redirectToExam(ctx, examID)
}

// DeleteTask removes a task.
func (c *TaskController) DeleteTask(ctx *gin.Context) {
	taskID, err := parseIDParam(ctx, "taskID")
	if err != nil {
		renderNotFound(ctx)
		return
	}

	examID, err := c.taskService.Delete(ctx, taskID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			renderNotFound(ctx)
			return
		}
		c.logger.Error().Err(err).Int64("taskId", taskID).Msg("Failed to delete task")
		renderNotFound(ctx)
		return
	}

	c.flash.Success(ctx, "Task deleted successfully!")
	redirectToExam(ctx, examID)
}

// Progress reports an exam's task completion as JSON.
func (c *TaskController) Progress(ctx *gin.Context) {
	examID, err := parseIDParam(ctx, "examID")
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Exam not found"),
		})
		return
	}

	progress, err := c.taskService.Progress(ctx, examID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			ctx.JSON(http.StatusNotFound, dto.APIResponse{
				Error: dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Exam not found"),
			})
			return
		}
		c.logger.Error().Err(err).Int64("examId", examID).Msg("Failed to compute progress")
		ctx.JSON(http.StatusInternalServerError, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Failed to compute exam progress"),
		})
		return
	}

	ctx.JSON(http.StatusOK, progress)
}
