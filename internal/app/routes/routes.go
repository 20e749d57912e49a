package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/ShriShintre/Exam-Buddy/internal/app/controllers"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	examController *controllers.ExamController,
	taskController *controllers.TaskController,
	noteController *controllers.NoteController,
	flashcardController *controllers.FlashcardController,
) {
	// Exam catalog
	router.GET("/", examController.Index)
	router.GET("/add_exam", examController.ShowAddExam)
	router.POST("/add_exam", examController.AddExam)
	router.GET("/edit_exam/:examID", examController.ShowEditExam)
	router.POST("/edit_exam/:examID", examController.EditExam)
	// Deletes and toggles stay GET for compatibility with existing links.
	router.GET("/delete_exam/:examID", examController.DeleteExam)
	router.GET("/exam/:examID", examController.Detail)
	router.GET("/countdown", examController.Countdown)

	// Tasks
	router.POST("/add_task/:examID", taskController.AddTask)
	router.GET("/toggle_task/:taskID", taskController.ToggleTask)
	router.GET("/delete_task/:taskID", taskController.DeleteTask)
	router.GET("/api/exam_progress/:examID", taskController.Progress)

	// Notes
	router.POST("/upload_note/:examID", noteController.Upload)
	router.GET("/download_note/:noteID", noteController.Download)
	router.GET("/delete_note/:noteID", noteController.Delete)

	// Flashcards
	router.GET("/flashcards", flashcardController.Index)
	router.POST("/flashcards", flashcardController.CreateFromForm)
	router.GET("/flashcards/:examID", flashcardController.ByExam)
	router.POST("/add_flashcard/:examID", flashcardController.Add)
	router.GET("/delete_flashcard/:flashcardID", flashcardController.Delete)
}
