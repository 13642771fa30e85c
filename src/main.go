package main

import (
	"io"
	"log"
	"os"
	"path"
	"regexp"

	"evbook/src/boot"
	"evbook/src/config"
	"evbook/src/db"
	"evbook/src/lib"

	"github.com/covalenthq/lumberjack"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func initLogger() {
	cwd, _ := os.Getwd()
	serverLogs := path.Join(cwd, "logs", "server.log")
	apiLogs := path.Join(cwd, "logs", "api.log")
	gin.ForceConsoleColor()

	f, _ := os.Create(apiLogs)
	gin.DefaultWriter = io.MultiWriter(f, os.Stdout)
	log.SetOutput(&lumberjack.Logger{
		Filename:   serverLogs,
		MaxSize:    500,
		MaxBackups: 3,
		MaxAge:     30,
		Compress:   true,
	})
}

func main() {
	cfg := config.Load()
	initLogger()

	gdb, err := db.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %s", err)
	}
	boot.InitDb(gdb)

	rdb := lib.NewRedisClient(cfg.RedisURL)

	geocoder, err := lib.NewGeocoder(cfg.MapsAPIKey, rdb)
	if err != nil {
		// Events created without a working geocoder get fallback location
		// text instead of failing.
		log.Printf("Geocoder not ready: %s\n", err.Error())
	}

	payments, err := lib.NewPayPalClient(cfg)
	if err != nil {
		// Checkout re-checks configuration per request, so a missing key
		// does not keep the rest of the API from serving.
		log.Printf("PayPal client not ready: %s\n", err.Error())
	}

	if scheduler := boot.InitScheduler(gdb); scheduler != nil {
		defer scheduler.Shutdown()
	}

	router := setupRouter()

	apiEnv := os.Getenv("API_ENV")
	if apiEnv == "local" {
		router.Use(cors.Default())
	} else {
		cc := cors.DefaultConfig()
		cc.AllowMethods = append(cc.AllowMethods, "GET", "POST", "PATCH", "PUT", "DELETE", "HEAD")
		cc.AllowHeaders = append(cc.AllowHeaders, "Origin", "Authorization")
		cc.AllowOriginFunc = func(origin string) bool {
			match, _ := regexp.MatchString(cfg.AppHost, origin)
			return match
		}
		cc.AllowCredentials = true
		cc.AllowAllOrigins = false
		router.Use(cors.New(cc))
	}

	app := NewApp(gdb, cfg, payments, geocoder, rdb)
	app.registerRoutes(router)

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %s", err)
	}
}
