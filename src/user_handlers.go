package main

import (
	"errors"
	"log"
	"net/http"

	"evbook/src/models"
	"evbook/src/models/scopes"
	"evbook/src/types"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func (a *App) userHandlers(g *gin.RouterGroup, authRequired gin.HandlerFunc) *gin.RouterGroup {
	g.
		GET("/balance", authRequired, func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			var user models.User
			if err := a.db.
				Model(&models.User{}).
				Where(&models.User{ID: userId}).
				First(&user).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"balance": user.Balance})
		}).
		GET("/events", authRequired, func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			var events []models.Event
			if err := a.db.
				Model(&models.Event{}).
				Where(&models.Event{OrganizerID: userId}).
				Order("created_at DESC").
				Find(&events).
				Error; err != nil {
				log.Printf("Error retrieving events for user %d: %s\n", userId, err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get events"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"events": events})
		}).
		GET("/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var user models.User
			if err := a.db.
				Model(&models.User{}).
				Scopes(scopes.WithID(params.ID)).
				First(&user).
				Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
					return
				}
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get user"})
				return
			}
			ctx.JSON(http.StatusOK, user.Public())
		})
	return g
}
