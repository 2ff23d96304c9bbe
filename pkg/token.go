package pkg

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
)

const urlAlphabet = "useandom-26T198340PX75pxJACKVERYMINDBUSHWOLF_GQZbfghjklqvwyzrict"

// randomID returns a URL-safe random string of the given length.
func randomID(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	for i, b := range buf {
		buf[i] = urlAlphabet[int(b)&63]
	}
	return string(buf), nil
}

// NewAccessToken mints the high-entropy secret paired with an interview link:
// 32 random bytes hex-encoded plus a 32-char URL-safe suffix. Never derivable
// from the link slug.
func NewAccessToken() (string, error) {
	raw := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, raw); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	suffix, err := randomID(32)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(raw) + suffix, nil
}

// NewLinkSlug returns the 12-char public slug embedded in an interview link.
func NewLinkSlug() (string, error) {
	return randomID(12)
}
