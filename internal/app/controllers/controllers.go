package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// parseIDParam parses an ID parameter from the request path
func parseIDParam(ctx *gin.Context, paramName string) (int64, error) {
	idStr := ctx.Param(paramName)
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, err
	}
	return id, nil
}

// renderNotFound renders the HTML 404 page and stops the chain.
func renderNotFound(ctx *gin.Context) {
	ctx.HTML(http.StatusNotFound, "404.html", gin.H{})
	ctx.Abort()
}

// redirectToExam sends the client back to an exam's detail page.
func redirectToExam(ctx *gin.Context, examID int64) {
	ctx.Redirect(http.StatusFound, "/exam/"+strconv.FormatInt(examID, 10))
}

// redirectToExamFlashcards sends the client back to an exam's flashcards page.
func redirectToExamFlashcards(ctx *gin.Context, examID int64) {
	ctx.Redirect(http.StatusFound, "/flashcards/"+strconv.FormatInt(examID, 10))
}
