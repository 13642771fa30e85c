package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"evbook/src/config"
	"evbook/src/models"
	"evbook/src/types"
	"evbook/src/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const defaultEventImage = "/images/mockhead.jpg"

const (
	addressFallback = "Address not available"
	cityFallback    = "City not available"
)

func (a *App) eventHandlers(g *gin.RouterGroup, authRequired gin.HandlerFunc) *gin.RouterGroup {
	g.
		GET("", func(ctx *gin.Context) {
			var query types.EventListQuery
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if query.Page < 1 {
				query.Page = 1
			}
			if query.Limit < 1 {
				query.Limit = 9
			}

			q := a.db.Model(&models.Event{})
			if query.Category != "" && query.Category != "all" {
				q = q.Where("category ILIKE ?", "%"+query.Category+"%")
			}
			if query.Location != "" {
				q = q.Where("city ILIKE ? OR address ILIKE ?", "%"+query.Location+"%", "%"+query.Location+"%")
			}
			if query.Name != "" {
				q = q.Where("title ILIKE ?", "%"+query.Name+"%")
			}
			if query.DateFrom != "" {
				from, err := time.Parse(config.DATE_PARSE_FORMAT, query.DateFrom)
				if err != nil {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dateFrom"})
					return
				}
				q = q.Where("date >= ?", from)
			}
			if query.DateTo != "" {
				to, err := time.Parse(config.DATE_PARSE_FORMAT, query.DateTo)
				if err != nil {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dateTo"})
					return
				}
				// Exclusive upper bound.
				q = q.Where("date < ?", to)
			}

			var total int64
			if err := q.Count(&total).Error; err != nil {
				log.Printf("Error counting events: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve events"})
				return
			}

			var events []models.Event
			offset := (query.Page - 1) * query.Limit
			if err := q.
				Preload("Organizer").
				Order("created_at DESC").
				Limit(query.Limit).
				Offset(offset).
				Find(&events).
				Error; err != nil {
				log.Printf("Error retrieving events: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve events"})
				return
			}

			ctx.JSON(http.StatusOK, gin.H{
				"events":      events,
				"currentPage": query.Page,
				"totalPages":  utils.TotalPages(total, query.Limit),
			})
		}).
		GET("/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var event models.Event
			if err := a.db.
				Model(&models.Event{}).
				Where(&models.Event{ID: params.ID}).
				Preload("Organizer").
				Preload("Reviews").
				First(&event).
				Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					ctx.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
					return
				}
				log.Printf("Error finding event %d: %s\n", params.ID, err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve event"})
				return
			}
			ctx.JSON(http.StatusOK, event)
		}).
		POST("/create", authRequired, func(ctx *gin.Context) {
			var form types.CreateEventForm
			if err := ctx.ShouldBind(&form); err != nil {
				missing, invalid := utils.BindingErrors(err)
				if len(missing) > 0 {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields", "missing": missing})
					return
				}
				if len(invalid) > 0 {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format"})
					return
				}
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}

			date, err := utils.CombineDateTime(form.Date, form.Time)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format"})
				return
			}

			address, city := a.resolveLocation(ctx, form.Location)

			imageURL := defaultEventImage
			if file, err := ctx.FormFile("file"); err == nil && file != nil {
				url, err := utils.SaveUploadedImage(ctx, file, a.cfg.UploadDir)
				if err != nil {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
					return
				}
				imageURL = url
			}

			event := models.Event{
				Title:          form.Title,
				Slug:           utils.EventSlug(form.Title),
				Description:    form.Description,
				Category:       form.Category,
				Address:        address,
				City:           city,
				Date:           date,
				AvailableSeats: form.AvailableSeats,
				Price:          form.Price,
				ImageURL:       imageURL,
				OrganizerID:    ctx.GetUint("id"),
			}
			if err := a.db.Create(&event).Error; err != nil {
				log.Printf("Error creating event: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create event"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"success": true, "event": event})
		})
	return g
}

// resolveLocation geocodes an optional {"lat":..,"lng":..} payload. Geocoder
// failures degrade to sentinel strings instead of failing event creation.
func (a *App) resolveLocation(ctx *gin.Context, locationStr string) (address, city string) {
	address = "Address not specified"
	city = "City not specified"
	if locationStr == "" || a.geocoder == nil {
		return address, city
	}
	var loc types.LatLng
	if err := json.Unmarshal([]byte(locationStr), &loc); err != nil {
		log.Printf("Error parsing location: %s\n", err.Error())
		return address, city
	}
	if loc.Lat == 0 && loc.Lng == 0 {
		return address, city
	}
	resolvedAddress, resolvedCity, err := a.geocoder.ReverseGeocode(ctx, loc.Lat, loc.Lng)
	if err != nil {
		log.Printf("Geocoding error: %s\n", err.Error())
		return addressFallback, cityFallback
	}
	return resolvedAddress, resolvedCity
}
