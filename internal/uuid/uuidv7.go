// Package uuid generates UUIDv7 identifiers for database primary keys.
// UUIDv7 embeds a millisecond timestamp, so keys sort in creation order,
// which keeps btree indexes compact compared to random v4 keys.
package uuid

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"time"

	googleuuid "github.com/google/uuid"
)

// New generates a new UUIDv7 string.
//
// Layout (RFC 4122):
//   - 48 bits: Unix timestamp in milliseconds
//   - 4 bits: version (0111)
//   - 12 bits: random
//   - 2 bits: variant (10)
//   - 62 bits: random
func New() string {
	var id [16]byte

	ts := uint64(time.Now().UnixMilli())
	binary.BigEndian.PutUint64(id[0:8], ts<<16)

	if _, err := rand.Read(id[6:]); err != nil {
		// crypto/rand failed; fall back to a standard v4 UUID.
		return googleuuid.New().String()
	}

	id[6] = (id[6] & 0x0f) | 0x70
	id[8] = (id[8] & 0x3f) | 0x80

	return format(id)
}

func format(id [16]byte) string {
	return fmt.Sprintf("%08x-%04x-%04x-%04x-%012x",
		binary.BigEndian.Uint32(id[0:4]),
		binary.BigEndian.Uint16(id[4:6]),
		binary.BigEndian.Uint16(id[6:8]),
		binary.BigEndian.Uint16(id[8:10]),
		id[10:16],
	)
}

// Parse validates and canonicalizes a UUID string.
func Parse(s string) (string, error) {
	parsed, err := googleuuid.Parse(s)
	if err != nil {
		return "", err
	}
	return parsed.String(), nil
}

// IsValid reports whether s is a well-formed UUID.
func IsValid(s string) bool {
	_, err := googleuuid.Parse(s)
	return err == nil
}
