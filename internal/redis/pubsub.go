package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// SeatAvailabilityPubSub publishes a change notification after every
// successful FindAndHold/Reserve on a venue, so other host processes
// watching the same venue can invalidate their own caches. Expiration
// sweeps publish no notification.
type SeatAvailabilityPubSub struct {
	rdb     *redis.Client
	channel string
}

func NewSeatAvailabilityPubSub(rdb *redis.Client) *SeatAvailabilityPubSub {
	return &SeatAvailabilityPubSub{
		rdb:     rdb,
		channel: ChannelVenueChanged(),
	}
}

type venueChangedMsg struct {
	Type    string `json:"type"`
	VenueID int64  `json:"venue_id"`
	TsUnix  int64  `json:"ts_unix"`
}

// PublishVenueChanged announces that venueID's availability may have
// changed.
func (p *SeatAvailabilityPubSub) PublishVenueChanged(ctx context.Context, venueID int64) error {
	msg := venueChangedMsg{
		Type:    "venue_changed",
		VenueID: venueID,
		TsUnix:  time.Now().Unix(),
	}

	b, _ := json.Marshal(msg)

	return p.rdb.Publish(ctx, p.channel, b).Err()
}

// Subscribe runs handler for every venue-changed notification until ctx is
// canceled or the subscription closes.
func (p *SeatAvailabilityPubSub) Subscribe(ctx context.Context, handler func(ctx context.Context, venueID int64)) error {
	sub := p.rdb.Subscribe(ctx, p.channel)
	defer sub.Close()

	ch := sub.Channel(redis.WithChannelSize(256))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case m, ok := <-ch:
			if !ok {
				return nil
			}
			var ev venueChangedMsg
			if err := json.Unmarshal([]byte(m.Payload), &ev); err == nil &&
				ev.VenueID != 0 {
				handler(ctx, ev.VenueID)
			}
		}
	}
}
