package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path"

	"evbook/src/models"
	"evbook/src/types"

	"github.com/gin-gonic/gin"
	"github.com/yeqown/go-qrcode"
	"gorm.io/gorm"
)

func (a *App) bookingHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var booking models.Booking
			if err := a.db.
				Model(&models.Booking{}).
				Where(&models.Booking{ID: params.ID}).
				Preload("Event").
				Preload("User").
				First(&booking).
				Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					ctx.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
					return
				}
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get booking"})
				return
			}
			ctx.JSON(http.StatusOK, booking)
		}).
		GET("/:id/qr", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var booking models.Booking
			if err := a.db.
				Model(&models.Booking{}).
				Where(&models.Booking{ID: params.ID}).
				First(&booking).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
				return
			}

			payload := fmt.Sprintf("booking:%d:event:%d:seats:%d", booking.ID, booking.EventID, booking.NumberOfSeats)
			qrc, err := qrcode.New(payload)
			if err != nil {
				log.Printf("Error building qrcode for booking %d: %s\n", booking.ID, err.Error())
				ctx.Status(http.StatusInternalServerError)
				return
			}
			if err := os.MkdirAll(a.cfg.TempDir, 0o755); err != nil {
				ctx.Status(http.StatusInternalServerError)
				return
			}
			filepath := path.Join(a.cfg.TempDir, fmt.Sprintf("booking-%d.jpeg", booking.ID))
			if err := qrc.Save(filepath); err != nil {
				log.Printf("Could not save qrcode to file [%s]: %s\n", filepath, err.Error())
				ctx.Status(http.StatusInternalServerError)
				return
			}
			ctx.File(filepath)
		})
	return g
}
