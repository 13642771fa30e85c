package middlewares

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"evbook/src/models"
	"evbook/src/types"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

// Auth verifies the bearer token and resolves it to a user row. On success
// the caller's id, username and email are set on the context.
func Auth(db *gorm.DB, jwtKey []byte) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		bearerToken := ctx.Request.Header.Get("Authorization")
		if !strings.HasPrefix(bearerToken, "Bearer ") {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		reqToken := strings.TrimPrefix(bearerToken, "Bearer ")
		if reqToken == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		claims := &types.Claims{}
		tkn, err := jwt.ParseWithClaims(reqToken, claims, func(t *jwt.Token) (any, error) {
			return jwtKey, nil
		})
		if err != nil || !tkn.Valid {
			if err != nil {
				log.Printf("token error: %s\n", err.Error())
			}
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		uid, err := strconv.Atoi(claims.Subject)
		if err != nil {
			log.Println("error parsing claims:", err.Error())
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
		var user models.User
		if err := db.
			Model(&models.User{}).
			Where(&models.User{ID: uint(uid)}).
			First(&user).
			Error; err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		ctx.Set("id", user.ID)
		ctx.Set("username", user.Username)
		ctx.Set("email", user.Email)
		ctx.Set("role", user.Role)
	}
}
