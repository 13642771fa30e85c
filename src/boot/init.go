package boot

import (
	"log"
	"time"

	"evbook/src/lib"
	"evbook/src/models"
	"evbook/src/models/scopes"
	"evbook/src/types"

	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

func InitDb(db *gorm.DB) *gorm.DB {
	err := db.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.Booking{},
		&models.Review{},
		&models.Order{},
	)
	if err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}
	return db
}

// Orders stuck in pending longer than this were abandoned before capture.
const orderExpiry = 24 * time.Hour

func ExpireStaleOrders(db *gorm.DB) error {
	return db.
		Model(&models.Order{}).
		Scopes(scopes.PendingStatus, scopes.OlderThan(orderExpiry)).
		Update("status", types.ORDER_EXPIRED).
		Error
}

// InitScheduler starts the background sweep that expires stale pending
// orders. The returned scheduler is shut down by main on exit.
func InitScheduler(db *gorm.DB) gocron.Scheduler {
	sched, err := lib.NewScheduler()
	if err != nil {
		log.Printf("Error creating scheduler: %s\n", err.Error())
		return nil
	}
	_, err = sched.NewJob(
		gocron.DurationJob(10*time.Minute),
		gocron.NewTask(func() {
			if err := ExpireStaleOrders(db); err != nil {
				log.Printf("Error while processing expired orders: %s\n", err.Error())
			}
		}),
	)
	if err != nil {
		log.Printf("Error scheduling order expiry job: %s\n", err.Error())
		return nil
	}
	sched.Start()
	return sched
}
