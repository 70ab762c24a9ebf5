package db

import (
	"context"
	"errors"
)

// ErrSlotNotFound is returned by Get when nothing was stored under the key.
var ErrSlotNotFound = errors.New("slot not found")

// Slot is one named blob.
type Slot struct {
	Key  string
	Data []byte
}

// SlotStore defines the interface for durable key-value blob storage.
type SlotStore interface {
	// Get returns the blob stored under key or ErrSlotNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put writes all slots, in order, as one batch where the backend
	// supports it.
	Put(ctx context.Context, slots ...Slot) error
	Close(ctx context.Context) error
}

func prefixed(prefix, key string) string {
	return prefix + key
}
