package knowledge

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/infopoison/alchemist-workbench/engine/core"
)

// Store is the knowledge-base snapshot: loaded once at startup, id-indexed,
// never mutated afterwards. Concurrent readers need no locking.
type Store struct {
	byType map[string]map[string]core.ComponentData
	order  map[string][]string
}

// NewStore builds a snapshot from raw JSON keyed by pluralized component
// type, each value a list of records carrying an "id" field.
func NewStore(raw []byte) (*Store, error) {
	var parsed map[string][]core.ComponentData
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode knowledge base: %w", err)
	}
	store := &Store{
		byType: make(map[string]map[string]core.ComponentData, len(parsed)),
		order:  make(map[string][]string, len(parsed)),
	}
	for componentType, items := range parsed {
		indexed := make(map[string]core.ComponentData, len(items))
		ids := make([]string, 0, len(items))
		for _, item := range items {
			id, ok := item["id"].(string)
			if !ok || id == "" {
				return nil, fmt.Errorf("knowledge base entry under %q has no id", componentType)
			}
			indexed[id] = item
			ids = append(ids, id)
		}
		store.byType[componentType] = indexed
		store.order[componentType] = ids
	}
	return store, nil
}

// NewStoreFromFile loads the snapshot from disk.
func NewStoreFromFile(path string) (*Store, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read knowledge base file: %w", err)
	}
	return NewStore(raw)
}

// List returns all records of a pluralized component type in file order.
func (s *Store) List(componentType string) ([]core.ComponentData, bool) {
	ids, ok := s.order[componentType]
	if !ok {
		return nil, false
	}
	items := make([]core.ComponentData, 0, len(ids))
	for _, id := range ids {
		items = append(items, s.byType[componentType][id])
	}
	return items, true
}

// Get returns one record by pluralized type and id.
func (s *Store) Get(componentType, id string) (core.ComponentData, bool) {
	indexed, ok := s.byType[componentType]
	if !ok {
		return nil, false
	}
	item, ok := indexed[id]
	return item, ok
}
