// Package kvstore persists opaque JSON values under named keys.
//
// All scam log state lives in three records of a Store: the report collection,
// the stats singleton and the id counter. Backends differ only in where the
// bytes end up.
package kvstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
)

var (
	ErrKeyNotFound = errors.New("key not found")
	ErrStorage     = errors.New("storage failure")
)

// Store is a last-writer-wins key-value store. Set always overwrites the full value.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Ping() error
	Close() error
}

// Keys names the records of one scam log namespace.
type Keys struct {
	Reports string
	Stats   string
	Counter string
}

func NewKeys(namespace string) Keys {
	if namespace == "" {
		namespace = "star_devs"
	}
	return Keys{
		Reports: namespace + "_scam_logs",
		Stats:   namespace + "_discord_stats",
		Counter: namespace + "_scam_counter",
	}
}

// ReadJSON decodes the value under key into v, which must be a non-nil pointer.
// A missing key or an undecodable value reports found=false and leaves v
// untouched so the caller can fall back to its default; only backend failures
// are returned as errors.
func ReadJSON(store Store, key string, v any) (bool, error) {
	target := reflect.ValueOf(v)
	if target.Kind() != reflect.Pointer || target.IsNil() {
		return false, fmt.Errorf("read %s: need a non-nil pointer, got %T", key, v)
	}

	data, err := store.Get(key)
	if errors.Is(err, ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: read %s: %v", ErrStorage, key, err)
	}
	// json.Unmarshal keeps filling fields after a type mismatch
	fresh := reflect.New(target.Elem().Type())
	if err := json.Unmarshal(data, fresh.Interface()); err != nil {
		slog.Warn("discarding undecodable stored value", "key", key, "error", err)
		return false, nil
	}
	target.Elem().Set(fresh.Elem())
	return true, nil
}

func WriteJSON(store Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", ErrStorage, key, err)
	}
	if err := store.Set(key, data); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrStorage, key, err)
	}
	return nil
}
