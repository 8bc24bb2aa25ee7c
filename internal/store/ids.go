package store

import (
	"strings"

	"github.com/google/uuid"
)

const (
	equipmentIDPrefix = "e"
	requestIDPrefix   = "r"
)

// IDFunc produces a candidate identifier for the given prefix.
type IDFunc func(prefix string) string

// RandomID returns prefix-xxxxxxxxxxxx using 48 random bits of a v4 uuid.
func RandomID(prefix string) string {
	return prefix + "-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// maxCustomAttempts bounds how long a misbehaving IDFunc is retried before
// falling back to RandomID.
const maxCustomAttempts = 16

// issue draws candidates until one has never been handed out. Callers hold
// the store write lock.
func (s *Store) issue(prefix string) string {
	for attempt := 0; ; attempt++ {
		id := s.newID(prefix)
		if attempt >= maxCustomAttempts {
			id = RandomID(prefix)
		}
		if id == "" {
			continue
		}
		if _, taken := s.issued[id]; taken {
			continue
		}
		s.issued[id] = struct{}{}
		return id
	}
}
