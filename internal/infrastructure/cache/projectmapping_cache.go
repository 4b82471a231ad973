package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/xdd7520/QualityStar/internal/domain/projectmapping"
)

const defaultProjectMappingCacheSize = 1024

// ProjectMappingCache is a bounded LRU of mappings keyed by eureka name. Values are copied on the way in
// and out so callers never share a pointer with the cache.
type ProjectMappingCache struct {
	entries *lru.Cache[string, projectmapping.ProjectMapping]
}

var _ projectmapping.Cache = (*ProjectMappingCache)(nil)

func NewProjectMappingCache(size int) (*ProjectMappingCache, error) {
	if size <= 0 {
		size = defaultProjectMappingCacheSize
	}
	entries, err := lru.New[string, projectmapping.ProjectMapping](size)
	if err != nil {
		return nil, err
	}
	return &ProjectMappingCache{entries: entries}, nil
}

func (c *ProjectMappingCache) Get(eurekaName string) (*projectmapping.ProjectMapping, bool) {
	m, ok := c.entries.Get(eurekaName)
	if !ok {
		return nil, false
	}
	return &m, true
}

func (c *ProjectMappingCache) Add(mapping *projectmapping.ProjectMapping) {
	if mapping == nil || mapping.EurekaName == "" {
		return
	}
	c.entries.Add(mapping.EurekaName, *mapping)
}

func (c *ProjectMappingCache) Invalidate(eurekaName string) {
	c.entries.Remove(eurekaName)
}

func (c *ProjectMappingCache) Len() int {
	return c.entries.Len()
}
