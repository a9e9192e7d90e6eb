package store

import (
	"encoding/json"
	"fmt"
	"log"
)

// LoadCollection reads a collection from the mirror. A missing or malformed
// document is not fatal: the collection is reseeded from its default dataset
// and the default is immediately re-persisted. The seed function is only
// invoked when needed.
func LoadCollection[T any](kv KV, key string, seed func() []T) ([]T, error) {
	raw, ok, err := kv.Get(key)
	if err != nil {
		return nil, err
	}
	if ok {
		var items []T
		if err := json.Unmarshal(raw, &items); err == nil {
			return items, nil
		}
		log.Printf("store: discarding malformed %s document, reseeding: %v", key, err)
	}

	items := seed()
	if err := SaveCollection(kv, key, items); err != nil {
		return nil, err
	}
	return items, nil
}

// SaveCollection mirrors a collection to the store as one JSON document.
func SaveCollection[T any](kv KV, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	return SaveCollectionValue(kv, key, items)
}

// SaveCollectionValue mirrors any JSON-encodable document, collection or
// scalar, under the given key.
func SaveCollectionValue(kv KV, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return kv.Put(key, raw)
}
