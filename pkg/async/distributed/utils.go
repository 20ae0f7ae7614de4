package distributed

import (
	"crypto/rand"
	"fmt"
	"os"
	"time"
)

// generateInstanceID creates a unique identifier for this application instance.
func generateInstanceID() string {
	hostname, _ := os.Hostname()
	pid := os.Getpid()

	// Add random bytes for uniqueness
	randomBytes := make([]byte, 4)
	rand.Read(randomBytes)

	return fmt.Sprintf("%s-%d-%x-%d",
		hostname, pid, randomBytes, time.Now().Unix())
}

// redisKeys generates the Redis keys used by one shared promise.
func redisKeys(prefix string) map[string]string {
	return map[string]string{
		"payload":   prefix + ":payload",
		"notify":    prefix + ":notify",
		"instances": prefix + ":instances",
	}
}
