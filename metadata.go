package dirmigrate

import (
	"fmt"
	"sync"

	"github.com/BurntSushi/toml"
)

// Metadata is the structured annotation attached to a migration.
//
// For directory migrations, metadata is read from metadata.toml. The only key interpreted by this
// package is run_in_transaction; other keys are available to callers.
type Metadata interface {
	// Get decodes the value stored at key into v, which must be a non-nil pointer. ok is false when
	// the key is absent. When the key is present but cannot be decoded into v, err matches
	// [ErrInvalidMetadata].
	Get(key string, v any) (ok bool, err error)
}

// Lookup is a typed wrapper around [Metadata.Get].
//
//	useTx, ok, err := dirmigrate.Lookup[bool](md, "run_in_transaction")
func Lookup[T any](md Metadata, key string) (T, bool, error) {
	var v T
	if md == nil {
		return v, false, nil
	}
	ok, err := md.Get(key, &v)
	return v, ok, err
}

// tomlMetadata keeps the top-level values undecoded so each lookup can pick its own target type.
type tomlMetadata struct {
	values map[string]toml.Primitive

	// PrimitiveDecode records decoded keys on md, so lookups are serialized.
	mu sync.Mutex
	md toml.MetaData
}

var _ Metadata = (*tomlMetadata)(nil)

func parseMetadata(data []byte) (*tomlMetadata, error) {
	var values map[string]toml.Primitive
	md, err := toml.Decode(string(data), &values)
	if err != nil {
		return nil, err
	}
	if values == nil {
		values = make(map[string]toml.Primitive)
	}
	return &tomlMetadata{md: md, values: values}, nil
}

func (t *tomlMetadata) Get(key string, v any) (bool, error) {
	prim, ok := t.values[key]
	if !ok {
		return false, nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.md.PrimitiveDecode(prim, v); err != nil {
		return true, &MetadataError{Key: key, Err: err}
	}
	return true, nil
}

// Keys returns the top-level keys of the document in the order they appear.
func (t *tomlMetadata) Keys() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	var keys []string
	for _, k := range t.md.Keys() {
		if len(k) == 1 {
			keys = append(keys, k[0])
		}
	}
	return keys
}

func (t *tomlMetadata) String() string {
	return fmt.Sprintf("metadata%v", t.Keys())
}
