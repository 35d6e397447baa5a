package app

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
)

// hashChunkSize bounds how much of a file is held in memory while hashing;
// index subjects can be arbitrarily large.
const hashChunkSize = 64 * 1024

// hashFile computes the hex SHA-256 digest of a file's full content, streamed
// in fixed-size chunks. The algorithm must stay stable for the lifetime of an
// index: duplicate grouping compares stored digests across scans.
func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	buf := make([]byte, hashChunkSize)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return "", err
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
