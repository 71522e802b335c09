package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"uchef/internal/domain"
	reviewsvc "uchef/internal/service/review"
)

type reviewRequest struct {
	SubjectID string `json:"subjectId" binding:"required"`
	Rating    int    `json:"rating" binding:"required"`
	Comment   string `json:"comment"`
}

func listReviewsHandler(reviews reviewService, subject domain.ReviewSubject) gin.HandlerFunc {
	return func(c *gin.Context) {
		subjectID := c.Query("subject")
		if subjectID == "" {
			badRequest(c, "subject query parameter required")
			return
		}

		if c.Query("summary") == "true" {
			summary, err := reviews.Summary(c.Request.Context(), subject, subjectID)
			if err != nil {
				respondError(c, err)
				return
			}
			c.JSON(http.StatusOK, summary)
			return
		}

		list, err := reviews.ListBySubject(c.Request.Context(), subject, subjectID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

func createReviewHandler(reviews reviewService, subject domain.ReviewSubject) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req reviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		r, err := reviews.Create(c.Request.Context(), currentUser(c).ID, reviewsvc.CreateInput{
			Subject:   subject,
			SubjectID: req.SubjectID,
			Rating:    req.Rating,
			Comment:   req.Comment,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, r)
	}
}

func deleteReviewHandler(reviews reviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := reviews.Delete(c.Request.Context(), c.Param("id"), currentUser(c).ID); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
