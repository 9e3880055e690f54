package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// formatRecord is what a format key hashes. The source is reduced to its
// digest first so large files do not pass through the JSON encoder.
type formatRecord struct {
	Language string        `json:"language"`
	Source   string        `json:"source"`
	Opts     FormatKeyOpts `json:"opts"`
}

// formatKey returns "<prefix>:<sha256>" for formatting source as language
// with opts. Two requests share a key only when all three agree.
func formatKey(prefix, language string, source []byte, opts FormatKeyOpts) string {
	data, _ := json.Marshal(formatRecord{Language: language, Source: Hash(source), Opts: opts})
	return prefix + ":" + Hash(data)
}

// Hash returns the hex SHA-256 digest of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
