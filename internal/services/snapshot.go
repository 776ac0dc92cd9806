package services

import (
	"encoding/json"

	"go.uber.org/zap"
)

// SlotStore is the opaque string-keyed durable store the tracker persists
// into. SaveAll writes every given slot unconditionally; there is no diffing
// and no multi-key atomicity promise beyond what the backend happens to give.
type SlotStore interface {
	Load(key string) (string, bool, error)
	SaveAll(slots map[string]string) error
	Clear() error
}

// loadStructured reads a slot and JSON-decodes it into T. Absent slots and
// malformed payloads both yield fallback; a parse failure is logged and never
// raised to the caller.
func loadStructured[T any](store SlotStore, logger *zap.Logger, key string, fallback T) T {
	raw, ok, err := store.Load(key)
	if err != nil {
		logger.Warn("slot_load_failed", zap.String("key", key), zap.Error(err))
		return fallback
	}
	if !ok {
		return fallback
	}
	var out T
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		logger.Warn("slot_parse_failed", zap.String("key", key), zap.Error(err))
		return fallback
	}
	return out
}

// marshalSlot JSON-encodes a collection for storage. The tracked types have
// no unmarshalable fields, so the error is ignored.
func marshalSlot(v any) string {
	b, _ := json.Marshal(v)
	return string(b)
}

// loadScalar reads a raw string slot, returning fallback when absent.
func loadScalar(store SlotStore, logger *zap.Logger, key, fallback string) string {
	raw, ok, err := store.Load(key)
	if err != nil {
		logger.Warn("slot_load_failed", zap.String("key", key), zap.Error(err))
		return fallback
	}
	if !ok {
		return fallback
	}
	return raw
}
