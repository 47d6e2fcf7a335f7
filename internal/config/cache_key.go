package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// HierarchyKey returns the cache key for the full catalog hierarchy tree.
func (r *CacheKeyStruct) HierarchyKey() string {
	return "catalog:hierarchy"
}

// EnrichLockKey returns the per-major advisory lock key used to serialize
// first-time enrichment of a single major code.
func (r *CacheKeyStruct) EnrichLockKey(code string) string {
	return fmt.Sprintf("enrich:lock:%s", code)
}

var CacheKey = NewCacheKeyStruct()
