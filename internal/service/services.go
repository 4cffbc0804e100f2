package service

import (
	redisx "github.com/tixgo/seatengine/internal/redis"
	postgres "github.com/tixgo/seatengine/internal/repository/postgres"
	redis "github.com/tixgo/seatengine/internal/repository/redis"
	"github.com/tixgo/seatengine/internal/service/admin"
	"github.com/tixgo/seatengine/internal/service/query"
	"github.com/tixgo/seatengine/internal/service/reservation"
)

type Services struct {
	Reservation *reservation.Service
	Query       *query.Service
	Admin       *admin.Service
}

type Config struct {
	Reservation reservation.Config
	Query       query.Config
}

func NewServices(
	store *postgres.Store,
	cache *redis.Cache,
	pubsub *redisx.SeatAvailabilityPubSub,
	limiter *redis.SlidingWindowLimiter,
	cfg Config,
) *Services {
	reservationSvc := reservation.New(store, cache, pubsub, limiter, cfg.Reservation)

	return &Services{
		Reservation: reservationSvc,
		Query:       query.New(store, cache, reservationSvc, cfg.Query),
		Admin:       admin.New(store),
	}
}
