package gdrive

import (
	"log"
	"time"
)

// ParseTime get a RFC 3339 date-time string and return as a Unix time.
// An empty string (not requested or not set by the API) is 0.
// input example: 2018-08-03T12:03:30.407Z
func ParseTime(s string) int64 {
	if s == "" {
		return 0
	}

	t := new(time.Time)
	if err := t.UnmarshalText([]byte(s)); err != nil {
		log.Printf("ERROR: %s/ParseTime: can't parse timestring '%s': %v", packageName, s, err)
		return time.Now().Unix() - 4730000000 // -150 years
	}
	return t.Unix()
}
