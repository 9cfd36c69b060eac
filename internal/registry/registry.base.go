// Package registry cung cấp registry generic thread-safe cho các singleton
// dùng chung của ứng dụng (hiện tại: các *mongo.Collection đăng ký lúc khởi động).
package registry

import (
	"fmt"
	"sync"

	"voice_reception/internal/common"
)

// Registry quản lý item theo tên, an toàn khi truy cập đồng thời.
type Registry[T any] struct {
	items map[string]T
	mu    sync.RWMutex
}

// NewRegistry tạo registry rỗng.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{
		items: make(map[string]T),
	}
}

// Register đăng ký item theo tên, ghi đè nếu tên đã tồn tại.
// Trả về isNew = false khi ghi đè; name rỗng là lỗi.
func (r *Registry[T]) Register(name string, item T) (isNew bool, err error) {
	if name == "" {
		return false, fmt.Errorf("name cannot be empty: %w", common.ErrRequiredField)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	_, exists := r.items[name]
	r.items[name] = item
	return !exists, nil
}

// Get trả về item theo tên và cờ tồn tại.
func (r *Registry[T]) Get(name string) (item T, exists bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, exists = r.items[name]
	return item, exists
}
