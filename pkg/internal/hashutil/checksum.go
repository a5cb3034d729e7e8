package hashutil

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// CalculateFileChecksum calculates the SHA256 checksum of a file
func CalculateFileChecksum(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = file.Close()
	}()

	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}

	return fmt.Sprintf("sha256:%x", hash.Sum(nil)), nil
}

// ShortKey returns the first n hex characters of the SHA256 of s. It names
// cache entries derived from arbitrary strings such as repository URLs.
func ShortKey(s string, n int) string {
	sum := sha256.Sum256([]byte(s))
	key := hex.EncodeToString(sum[:])
	if n <= 0 || n > len(key) {
		return key
	}
	return key[:n]
}
