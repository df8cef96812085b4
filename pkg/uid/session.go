package uid

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GenerateClientID identifies one websocket connection for its lifetime.
func GenerateClientID() (string, error) {
	bytes := make([]byte, 12)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate client ID: %v", err)
	}
	return "c_" + hex.EncodeToString(bytes), nil
}
