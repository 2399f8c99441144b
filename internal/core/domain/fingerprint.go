package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// Fingerprint computes the content hash used for change detection.
// It is deterministic over the byte content alone: path, name and
// modification time never influence the result.
func Fingerprint(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// FingerprintFile streams a file through the hash without loading it
// into memory. The result equals Fingerprint over the file's bytes.
func FingerprintFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open for fingerprint: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("read for fingerprint: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
