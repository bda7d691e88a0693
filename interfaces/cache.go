package interfaces

import "context"

// Cache is a key-value store for records of type T. The worker registry keeps one record per
// worker address in it.
//
//go:generate moq -stub -out mock/cache.go -pkg mock . Cache
type Cache[T any] interface {
	// WriteValue upserts item under key. ttlMs <= 0 stores the value without expiry.
	// Returns:
	// 1) nil on success;
	// 2) internal_server_error when marshalling fails or when the storage write fails.
	WriteValue(ctx context.Context, key string, item T, ttlMs int) error

	// ReadValue returns the value stored under key.
	// Returns:
	// 1) (item, nil) when the key exists and decodes;
	// 2) (zero, entity_not_found) when the key is absent or expired;
	// 3) (zero, internal_server_error) on storage or decode failure.
	ReadValue(ctx context.Context, key string) (T, error)

	// ListAllValues returns all values in the cache (full scan).
	// Returns:
	// 1) (items, nil) when there is at least one value;
	// 2) (nil, entity_not_found) when there are no keys or no values could be read/unmarshalled;
	// 3) (nil, internal_server_error) when listing keys fails.
	ListAllValues(ctx context.Context) ([]T, error)
}
