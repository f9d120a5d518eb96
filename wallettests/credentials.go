package wallettests

import (
	"math/rand"
	"strconv"
)

const (
	usernameSuffixMin = 1000
	usernameSuffixMax = 99999999
)

// NewUsername returns prefix followed by a random number in [1000, 99999999).
//
// Uniqueness is not guaranteed. With about 10^8 possible suffixes, the chance that n accounts
// created with the same prefix include a collision is roughly n*n/(2*10^8): under 0.5% for
// a thousand runs. A collision shows up as a failed username change or registration and is
// not retried.
func NewUsername(prefix string) string {
	n := usernameSuffixMin + rand.Intn(usernameSuffixMax-usernameSuffixMin)
	return prefix + strconv.Itoa(n)
}
