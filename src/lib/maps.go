package lib

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"googlemaps.github.io/maps"
)

// Geocoder resolves a lat/lng pair to a street address and a city name.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, lat, lng float64) (address, city string, err error)
}

type googleGeocoder struct {
	cli *maps.Client
	rdb *redis.Client
}

type geoResult struct {
	Address string `json:"address"`
	City    string `json:"city"`
}

const geoCacheTTL = 24 * time.Hour

func NewGeocoder(apiKey string, rdb *redis.Client) (Geocoder, error) {
	cli, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &googleGeocoder{cli: cli, rdb: rdb}, nil
}

func (g *googleGeocoder) ReverseGeocode(ctx context.Context, lat, lng float64) (string, string, error) {
	key := fmt.Sprintf("geo:%.6f,%.6f", lat, lng)
	if g.rdb != nil {
		if val, err := g.rdb.Get(ctx, key).Result(); err == nil {
			var cached geoResult
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return cached.Address, cached.City, nil
			}
		}
	}

	results, err := g.cli.ReverseGeocode(ctx, &maps.GeocodingRequest{
		LatLng: &maps.LatLng{Lat: lat, Lng: lng},
	})
	if err != nil {
		return "", "", err
	}
	if len(results) == 0 {
		return "", "", errors.New("no address found for the given coordinates")
	}

	address := results[0].FormattedAddress
	city, err := cityFromComponents(results[0].AddressComponents)
	if err != nil {
		return "", "", err
	}

	if g.rdb != nil {
		b, _ := json.Marshal(&geoResult{Address: address, City: city})
		if err := g.rdb.Set(ctx, key, b, geoCacheTTL).Err(); err != nil {
			log.Printf("[redis] Error caching geocode result: %s\n", err.Error())
		}
	}
	return address, city, nil
}

func cityFromComponents(components []maps.AddressComponent) (string, error) {
	for _, c := range components {
		for _, t := range c.Types {
			if t == "locality" {
				return c.LongName, nil
			}
		}
	}
	// Same positional fallback the address lookup has always used.
	if len(components) > 2 {
		return components[2].LongName, nil
	}
	return "", errors.New("city not found in address components")
}
