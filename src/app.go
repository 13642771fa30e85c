package main

import (
	"time"

	"evbook/src/config"
	"evbook/src/lib"
	"evbook/src/middlewares"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// App aggregates the handles every handler group needs. It is built once in
// main (or in a test) and passed down; handlers hold no package-level state.
type App struct {
	db       *gorm.DB
	cfg      *config.Config
	payments lib.Payments
	geocoder lib.Geocoder
	rdb      *redis.Client
}

func NewApp(db *gorm.DB, cfg *config.Config, payments lib.Payments, geocoder lib.Geocoder, rdb *redis.Client) *App {
	return &App{db: db, cfg: cfg, payments: payments, geocoder: geocoder, rdb: rdb}
}

var calendarDateValidatorFunc validator.Func = func(fl validator.FieldLevel) bool {
	date, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	_, err := time.Parse(config.DATE_PARSE_FORMAT, date)
	return err == nil
}

func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("calendardate", calendarDateValidatorFunc)
	}
}

func setupRouter() *gin.Engine {
	router := gin.Default()
	router.Use(middlewares.SecureHeaders)
	registerValidators()
	return router
}

func apiGroup(g *gin.Engine) *gin.RouterGroup {
	return g.Group("/api")
}

// registerRoutes wires the whole HTTP surface onto the router.
func (a *App) registerRoutes(router *gin.Engine) {
	api := apiGroup(router)
	authRequired := middlewares.Auth(a.db, []byte(a.cfg.JWTSecret))

	a.authHandlers(api.Group("/auth"), authRequired)
	a.eventHandlers(api.Group("/events"), authRequired)
	a.bookingHandlers(api.Group("/bookings"))
	a.userHandlers(api.Group("/user"), authRequired)
	a.ratingHandlers(api.Group("/rating"), authRequired)
	a.healthHandlers(api.Group("/health"))
	a.webhookHandlers(api.Group("/webhook"))

	checkout := api.Group("/checkout")
	checkout.Use(authRequired)
	a.checkoutHandlers(checkout)

	router.Static("/uploads", a.cfg.UploadDir)
	router.Static("/images", "public/images")
}
