package main

import (
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tidwall/gjson"
)

// webhookHandlers acknowledges provider event notifications. Bookings are
// materialized by the capture endpoint, so the hook only logs what arrived.
func (a *App) webhookHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/paypal", func(ctx *gin.Context) {
			payload, err := io.ReadAll(ctx.Request.Body)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Could not read webhook payload"})
				return
			}
			eventType := gjson.GetBytes(payload, "event_type").String()
			resourceID := gjson.GetBytes(payload, "resource.id").String()
			log.Printf("PayPal webhook received: type=%s resource=%s\n", eventType, resourceID)
			ctx.JSON(http.StatusOK, gin.H{"received": true})
		})
	return g
}
