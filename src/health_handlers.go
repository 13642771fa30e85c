package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (a *App) healthHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("", func(ctx *gin.Context) {
			dbState := "connected"
			databaseInfo := gin.H{
				"host": a.cfg.DatabaseHost,
				"name": a.cfg.DatabaseName,
			}
			sqlDB, err := a.db.DB()
			if err != nil {
				dbState = "disconnected"
			} else if err := sqlDB.PingContext(ctx); err != nil {
				dbState = "disconnected"
			}
			status := http.StatusOK
			if dbState != "connected" {
				status = http.StatusServiceUnavailable
			}
			ctx.JSON(status, gin.H{
				"server":       "running",
				"database":     dbState,
				"timestamp":    time.Now().UTC().Format(time.RFC3339),
				"databaseInfo": databaseInfo,
			})
		})
	return g
}
