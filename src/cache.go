package main

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"evbook/src/models"

	"github.com/gin-gonic/gin"
)

// cachedProfile reads a previously cached public profile. Any redis error
// counts as a miss and the caller falls back to the database.
func (a *App) cachedProfile(ctx *gin.Context, userId uint) (*models.PublicUser, bool) {
	if a.rdb == nil {
		return nil, false
	}
	key := fmt.Sprintf("%d:user", userId)
	val, err := a.rdb.Get(ctx, key).Result()
	if err != nil {
		return nil, false
	}
	var profile models.PublicUser
	if err := json.Unmarshal([]byte(val), &profile); err != nil {
		return nil, false
	}
	return &profile, true
}

// cacheProfile keeps the public profile of a freshly logged-in user in redis
// for the token lifetime. Best effort; a cache miss just means a DB read.
func (a *App) cacheProfile(ctx *gin.Context, user *models.User) {
	if a.rdb == nil {
		return
	}
	b, _ := json.Marshal(user.Public())
	key := fmt.Sprintf("%d:user", user.ID)
	if err := a.rdb.Set(ctx, key, b, 7*24*time.Hour).Err(); err != nil {
		log.Printf("[redis] Error updating user cache: %s\n", err.Error())
	}
}
