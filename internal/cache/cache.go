// Package cache keeps converted documents keyed by alphabet and normalized
// expression.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"retodfa/internal/dto"
)

// Cache stores conversion documents. Get reports a miss with ok == false and
// a nil error.
type Cache interface {
	Get(ctx context.Context, key string) (doc *dto.Document, ok bool, err error)
	Set(ctx context.Context, key string, doc *dto.Document) error
}

// Key derives the cache key for an alphabet and a normalized expression.
// Symbol order matters because it fixes the DFA numbering.
func Key(alphabet []string, expression string) string {
	h := sha256.New()
	h.Write([]byte(strings.Join(alphabet, "\x00")))
	h.Write([]byte{0xff})
	h.Write([]byte(expression))
	return hex.EncodeToString(h.Sum(nil))
}

// Nop never stores anything.
type Nop struct{}

func (Nop) Get(context.Context, string) (*dto.Document, bool, error) { return nil, false, nil }
func (Nop) Set(context.Context, string, *dto.Document) error         { return nil }
