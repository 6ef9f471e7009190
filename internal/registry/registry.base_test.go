package registry

import (
	"errors"
	"sync"
	"testing"

	"github.com/ndip23/pressing-management-system-sub000/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_RegisterOverwrite(t *testing.T) {
	r := NewRegistry[int]()

	isNew, err := r.Register("orders", 1)
	require.NoError(t, err)
	assert.True(t, isNew)

	isNew, err = r.Register("orders", 2)
	require.NoError(t, err)
	assert.False(t, isNew, "ghi đè phải trả isNew=false")

	v, ok := r.Get("orders")
	assert.True(t, ok)
	assert.Equal(t, 2, v)

	_, ok = r.Get("customers")
	assert.False(t, ok)
}

func TestRegistry_EmptyName(t *testing.T) {
	r := NewRegistry[string]()
	_, err := r.Register("", "x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrRequiredField))
}

func TestRegistry_NamesSortedUnderConcurrency(t *testing.T) {
	r := NewRegistry[string]()
	var wg sync.WaitGroup
	for _, name := range []string{"orders", "counters", "customers", "settings"} {
		wg.Add(1)
		go func(n string) {
			defer wg.Done()
			_, _ = r.Register(n, n)
		}(name)
	}
	wg.Wait()
	assert.Equal(t, []string{"counters", "customers", "orders", "settings"}, r.Names())
}
