package main

import (
	"log"
	"net/http"

	"evbook/src/models"
	"evbook/src/types"

	"github.com/gin-gonic/gin"
)

func (a *App) ratingHandlers(g *gin.RouterGroup, authRequired gin.HandlerFunc) *gin.RouterGroup {
	g.
		GET("/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var reviews []models.Review
			if err := a.db.
				Model(&models.Review{}).
				Where(&models.Review{EventID: params.ID}).
				Preload("User").
				Find(&reviews).
				Error; err != nil {
				log.Printf("Error retrieving reviews for event %d: %s\n", params.ID, err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get reviews"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"reviews": reviews})
		}).
		POST("/:id", authRequired, func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.CreateReviewRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			review := models.Review{
				EventID:    params.ID,
				UserID:     ctx.GetUint("id"),
				Rating:     body.Rating,
				ReviewText: body.ReviewText,
			}
			if err := a.db.Create(&review).Error; err != nil {
				log.Printf("Error creating review: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create review"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"success": true, "review": review})
		})
	return g
}
