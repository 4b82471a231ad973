package cache

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xdd7520/QualityStar/internal/domain/projectmapping"
)

func TestProjectMappingCache_CopiesValues(t *testing.T) {
	c, err := NewProjectMappingCache(4)
	require.NoError(t, err)

	m := &projectmapping.ProjectMapping{ID: 1, EurekaName: "order-svc"}
	c.Add(m)
	m.UploadName = "mutated"

	got, ok := c.Get("order-svc")
	require.True(t, ok)
	assert.Empty(t, got.UploadName)

	got.Name = "also mutated"
	again, _ := c.Get("order-svc")
	assert.Empty(t, again.Name)
}

func TestProjectMappingCache_EvictsAndInvalidates(t *testing.T) {
	c, err := NewProjectMappingCache(2)
	require.NoError(t, err)

	c.Add(&projectmapping.ProjectMapping{ID: 1, EurekaName: "a"})
	c.Add(&projectmapping.ProjectMapping{ID: 2, EurekaName: "b"})
	c.Add(&projectmapping.ProjectMapping{ID: 3, EurekaName: "c"})

	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 2, c.Len())

	c.Invalidate("b")
	_, ok = c.Get("b")
	assert.False(t, ok)

	c.Add(&projectmapping.ProjectMapping{ID: 4})
	assert.Equal(t, 1, c.Len())
}

func TestProjectMappingCache_ConcurrentUse(t *testing.T) {
	c, err := NewProjectMappingCache(0)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := []string{"x", "y", "z"}[i%3]
			c.Add(&projectmapping.ProjectMapping{ID: uint(i), EurekaName: name})
			c.Get(name)
			if i%5 == 0 {
				c.Invalidate(name)
			}
		}(i)
	}
	wg.Wait()
	assert.LessOrEqual(t, c.Len(), 3)
}
