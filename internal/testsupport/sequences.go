package testsupport

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"
)

// testSequence starts from the clock so reruns against a shared database do not collide
var testSequence = uint64(time.Now().UnixNano() % 1000000)

// NextSequence returns next unique sequence number
func NextSequence() uint64 {
	return atomic.AddUint64(&testSequence, 1)
}

// UniqueName generates a unique name with given prefix
// Example: UniqueName("Test Co") -> "Test Co 123456"
func UniqueName(prefix string) string {
	return fmt.Sprintf("%s %d", prefix, NextSequence())
}

// UniqueTicker generates an upper-case ticker that is unique within the test run
// Example: UniqueTicker("t") -> "T123456"
func UniqueTicker(prefix string) string {
	return fmt.Sprintf("%s%d", strings.ToUpper(prefix), NextSequence())
}

// UniqueID generates a positive record ID for in-memory fixtures
func UniqueID() int64 {
	return int64(NextSequence())
}
