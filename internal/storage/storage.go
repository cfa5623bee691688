// Package storage is the key/value persistence used for device state: the
// cart, recent searches and locally submitted quotes.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

const (
	KeyCart            = "cart"
	KeyRecentSearches  = "recent-searches"
	KeySubmittedQuotes = "submitted-quotes"
)

// FormatVersion tags every saved value.
const FormatVersion = 1

var (
	ErrKeyNotFound        = errors.New("key not found")
	ErrUnsupportedVersion = errors.New("unsupported stored format version")
)

// Store defines raw byte persistence by key. Load returns ErrKeyNotFound for
// a missing key.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}

type envelope struct {
	Version int             `json:"version"`
	Data    json.RawMessage `json:"data"`
}

// SaveJSON stores v wrapped in a versioned envelope.
func SaveJSON(ctx context.Context, s Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s failed: %w", key, err)
	}
	raw, err := json.Marshal(envelope{Version: FormatVersion, Data: data})
	if err != nil {
		return fmt.Errorf("marshal %s envelope failed: %w", key, err)
	}
	return s.Save(ctx, key, raw)
}

// LoadJSON reads the envelope stored under key into v.
func LoadJSON(ctx context.Context, s Store, key string, v any) error {
	raw, err := s.Load(ctx, key)
	if err != nil {
		return err
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("unmarshal %s envelope failed: %w", key, err)
	}
	if env.Version != FormatVersion {
		return fmt.Errorf("%s: version %d: %w", key, env.Version, ErrUnsupportedVersion)
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		return fmt.Errorf("unmarshal %s failed: %w", key, err)
	}
	return nil
}
