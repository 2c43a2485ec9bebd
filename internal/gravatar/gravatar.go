// Package gravatar derives avatar URLs from email addresses.
package gravatar

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
)

const (
	size          = "200"
	rating        = "pg"
	fallbackImage = "mm"
)

// URL returns the gravatar avatar URL for the given email, using the same
// size/rating/default parameters the legacy API exposed.
func URL(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	sum := md5.Sum([]byte(normalized))
	hash := hex.EncodeToString(sum[:])
	return fmt.Sprintf("https://www.gravatar.com/avatar/%s?s=%s&r=%s&d=%s", hash, size, rating, fallbackImage)
}
