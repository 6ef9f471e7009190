// Package registry giữ các singleton dùng chung (database, collection) theo tên.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/ndip23/pressing-management-system-sub000/internal/common"
)

// Registry map tên -> item, an toàn khi dùng đồng thời
type Registry[T any] struct {
	mu    sync.RWMutex
	items map[string]T
}

func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{items: map[string]T{}}
}

// Register đăng ký hoặc ghi đè item. isNew=false khi tên đã có
func (r *Registry[T]) Register(name string, item T) (isNew bool, err error) {
	if name == "" {
		return false, fmt.Errorf("registry name: %w", common.ErrRequiredField)
	}
	r.mu.Lock()
	_, existed := r.items[name]
	r.items[name] = item
	r.mu.Unlock()
	return !existed, nil
}

func (r *Registry[T]) Get(name string) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[name]
	return item, ok
}

// Names danh sách tên đã đăng ký, sắp xếp tăng dần
func (r *Registry[T]) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.items))
	for name := range r.items {
		names = append(names, name)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}
