package cart

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jakoblorz/go-panelcart/internal/kv"
	"github.com/jakoblorz/go-panelcart/internal/models"
	"go.uber.org/zap"
)

// Storage keys
const (
	CurrentItemsKey  = "currentPanels"
	TallyKey         = "customizedPanels"
	ActiveProjectKey = "activeProject"
	projectKeyPrefix = "panels_"
)

// SchemaVersion is written into every item and tally envelope.
const SchemaVersion = 1

type itemsEnvelope struct {
	Version int               `json:"version"`
	Items   []models.CartItem `json:"items"`
}

type tallyEnvelope struct {
	Version int          `json:"version"`
	Panels  models.Tally `json:"panels"`
}

// ProjectKey returns the storage key holding a project's item list.
func ProjectKey(code string) string {
	return projectKeyPrefix + code
}

// EncodeItems serializes items into the current schema envelope.
func EncodeItems(items []models.CartItem) (string, error) {
	if items == nil {
		items = []models.CartItem{}
	}
	data, err := json.Marshal(itemsEnvelope{Version: SchemaVersion, Items: items})
	if err != nil {
		return "", fmt.Errorf("failed to encode items: %w", err)
	}
	return string(data), nil
}

// DecodeItems parses a persisted item list. A bare JSON array is the
// unversioned layout and is still accepted.
func DecodeItems(raw string) ([]models.CartItem, error) {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "[") {
		var items []models.CartItem
		if err := json.Unmarshal([]byte(trimmed), &items); err != nil {
			return nil, fmt.Errorf("failed to parse items: %w", err)
		}
		return items, nil
	}

	var env itemsEnvelope
	if err := json.Unmarshal([]byte(trimmed), &env); err != nil {
		return nil, fmt.Errorf("failed to parse items: %w", err)
	}
	if env.Version != SchemaVersion {
		return nil, fmt.Errorf("items: %w: %d", ErrUnsupportedSchema, env.Version)
	}
	if env.Items == nil {
		env.Items = []models.CartItem{}
	}
	return env.Items, nil
}

// EncodeTally serializes a tally into the current schema envelope.
func EncodeTally(t models.Tally) (string, error) {
	if t == nil {
		t = models.Tally{}
	}
	data, err := json.Marshal(tallyEnvelope{Version: SchemaVersion, Panels: t})
	if err != nil {
		return "", fmt.Errorf("failed to encode tally: %w", err)
	}
	return string(data), nil
}

// DecodeTally parses a persisted tally. A bare JSON object without a
// "version" field is the unversioned layout.
func DecodeTally(raw string) (models.Tally, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil, fmt.Errorf("failed to parse tally: %w", err)
	}

	if _, versioned := fields["version"]; !versioned {
		var legacy models.Tally
		if err := json.Unmarshal([]byte(raw), &legacy); err != nil {
			return nil, fmt.Errorf("failed to parse tally: %w", err)
		}
		return normalizeTally(legacy), nil
	}

	var env tallyEnvelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return nil, fmt.Errorf("failed to parse tally: %w", err)
	}
	if env.Version != SchemaVersion {
		return nil, fmt.Errorf("tally: %w: %d", ErrUnsupportedSchema, env.Version)
	}
	return normalizeTally(env.Panels), nil
}

// normalizeTally turns a JSON null into an empty tally and clamps negative
// counts written by older clients.
func normalizeTally(t models.Tally) models.Tally {
	if t == nil {
		return models.Tally{}
	}
	for key, n := range t {
		if n < 0 {
			t[key] = 0
		}
	}
	return t
}

// readItems loads the list under key. ok is false when the key is missing
// or unreadable; failures are logged, never returned.
func readItems(backend kv.Backend, logger *zap.Logger, key string) ([]models.CartItem, bool) {
	raw, err := backend.Get(key)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			logger.Warn("failed to read items", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	items, err := DecodeItems(raw)
	if err != nil {
		logger.Warn("discarding unreadable items", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return items, true
}

func writeItems(backend kv.Backend, logger *zap.Logger, key string, items []models.CartItem) {
	raw, err := EncodeItems(items)
	if err != nil {
		logger.Error("failed to encode items", zap.String("key", key), zap.Error(err))
		return
	}
	if err := backend.Set(key, raw); err != nil {
		logger.Warn("failed to persist items", zap.String("key", key), zap.Error(err))
	}
}

func readTally(backend kv.Backend, logger *zap.Logger) models.Tally {
	raw, err := backend.Get(TallyKey)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			logger.Warn("failed to read tally", zap.String("key", TallyKey), zap.Error(err))
		}
		return models.Tally{}
	}

	tally, err := DecodeTally(raw)
	if err != nil {
		logger.Warn("discarding unreadable tally", zap.String("key", TallyKey), zap.Error(err))
		return models.Tally{}
	}
	return tally
}

func writeTally(backend kv.Backend, logger *zap.Logger, tally models.Tally) {
	raw, err := EncodeTally(tally)
	if err != nil {
		logger.Error("failed to encode tally", zap.Error(err))
		return
	}
	if err := backend.Set(TallyKey, raw); err != nil {
		logger.Warn("failed to persist tally", zap.String("key", TallyKey), zap.Error(err))
	}
}
