package lib

import (
	"github.com/go-co-op/gocron/v2"
)

func NewScheduler() (gocron.Scheduler, error) {
	return gocron.NewScheduler()
}
