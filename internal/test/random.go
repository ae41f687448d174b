package test

import (
	"math/rand"
	"sync"
	"time"
)

const alphanumeric = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

var (
	seededMu sync.Mutex
	seeded   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// RandomASCIIString returns an alphanumeric string whose length falls in
// [minLen, maxLen]. Equal bounds produce exactly that length.
func RandomASCIIString(minLen, maxLen int) string {
	if minLen <= 0 {
		minLen = 1
	}
	if maxLen < minLen {
		maxLen = minLen
	}

	seededMu.Lock()
	defer seededMu.Unlock()

	buf := make([]byte, minLen+seeded.Intn(maxLen-minLen+1))
	for i := range buf {
		buf[i] = alphanumeric[seeded.Intn(len(alphanumeric))]
	}
	return string(buf)
}
