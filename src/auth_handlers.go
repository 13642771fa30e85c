package main

import (
	"errors"
	"log"
	"net/http"

	"evbook/src/models"
	"evbook/src/types"
	"evbook/src/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func (a *App) authHandlers(g *gin.RouterGroup, authRequired gin.HandlerFunc) *gin.RouterGroup {
	g.
		POST("/register", func(ctx *gin.Context) {
			var body types.RegisterRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
				return
			}
			var existing models.User
			err := a.db.
				Model(&models.User{}).
				Where("username = ? OR email = ?", body.Username, body.Email).
				First(&existing).
				Error
			if err == nil {
				// Duplicate accounts are a non-fatal response, not an error.
				ctx.JSON(http.StatusOK, gin.H{"success": false, "message": "There is already an account with this username or email!"})
				return
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				log.Printf("Error checking for existing account: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
				return
			}

			hashed, err := utils.HashPassword(body.Password)
			if err != nil {
				log.Printf("Error hashing password: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
				return
			}
			user := models.User{
				Username:       body.Username,
				Email:          body.Email,
				Password:       hashed,
				Role:           "user",
				ProfilePicture: "",
			}
			if err := a.db.Create(&user).Error; err != nil {
				log.Printf("Error creating user: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Account created successfully!"})
		}).
		POST("/login", func(ctx *gin.Context) {
			var body types.LoginRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email and password are required"})
				return
			}
			var user models.User
			err := a.db.
				Model(&models.User{}).
				Where("email = ? OR username = ?", body.Email, body.Email).
				First(&user).
				Error
			// Same response shape for unknown identifier and wrong password.
			if err != nil || !utils.CheckPassword(user.Password, body.Password) {
				if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
					log.Printf("Error looking up user: %s\n", err.Error())
				}
				ctx.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid credentials"})
				return
			}

			token, err := utils.GenerateJWT(user.ID, user.Username, user.Email, []byte(a.cfg.JWTSecret))
			if err != nil {
				log.Printf("Error generating token: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
				return
			}
			a.cacheProfile(ctx, &user)
			ctx.JSON(http.StatusOK, gin.H{
				"success": true,
				"token":   token,
				"user":    user.Public(),
			})
		}).
		GET("/me", authRequired, func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			if profile, ok := a.cachedProfile(ctx, userId); ok {
				ctx.JSON(http.StatusOK, gin.H{"success": true, "user": profile})
				return
			}
			var user models.User
			if err := a.db.
				Model(&models.User{}).
				Where(&models.User{ID: userId}).
				First(&user).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
				return
			}
			a.cacheProfile(ctx, &user)
			ctx.JSON(http.StatusOK, gin.H{"success": true, "user": user.Public()})
		})
	return g
}
