package store

import (
	"crypto/rand"
	"encoding/base32"
	"strconv"
	"strings"
	"time"
)

// NewSeedID returns seed-<suffix> where suffix is 8 chars of base32 (lowercase,
// no padding), ~40 bits of space.
func NewSeedID() string {
	var b [5]byte
	if _, err := rand.Read(b[:]); err != nil {
		return EpochID()
	}
	enc := base32.StdEncoding.WithPadding(base32.NoPadding)
	return "seed-" + strings.ToLower(enc.EncodeToString(b[:]))
}

// EpochID is the fallback id for records loaded without one: current epoch
// millis, matching what old exports stored as numeric ids.
func EpochID() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 10)
}
