package redis

import "fmt"

const ns = "seatengine:v1"

// KeyVenueAvailability names the cache entry holding a venue's
// numAvailable() snapshot.
func KeyVenueAvailability(venueID int64) string {
	return fmt.Sprintf("%s:venue:%d:availability", ns, venueID)
}

// KeyRateLimit names a sliding-window rate-limit bucket.
func KeyRateLimit(scope, id string) string {
	return fmt.Sprintf("%s:rl:%s:%s", ns, scope, id)
}

// ChannelVenueChanged names the pub/sub channel carrying venue-availability
// change notifications.
func ChannelVenueChanged() string {
	return ns + ":venues:changed"
}
