package service

// Cache key prefixes; mutations delete the matching key explicitly, while
// parameter-keyed lists (availability, hotel pages) only ever age out by TTL.
const (
	cachePrefixHotel        = "hotel:"
	cachePrefixRoom         = "room:"
	cachePrefixReservation  = "reservation:"
	cachePrefixAvailability = "availability:"
)
