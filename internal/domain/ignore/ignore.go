package ignore

import (
	"context"
	"path"
	"strings"
	"time"

	"github.com/xdd7520/QualityStar/internal/domain/query"
)

// IgnoreInterface excludes a URI from coverage accounting. A URI containing '*' is matched as a glob.
type IgnoreInterface struct {
	ID          uint      `json:"id"`
	URI         string    `json:"uri"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type IgnoreFilter struct {
	Search *string
}

type IgnoreRepository interface {
	Create(ctx context.Context, rule *IgnoreInterface) error
	FindByID(ctx context.Context, id uint) (*IgnoreInterface, error)
	FindAll(ctx context.Context) ([]*IgnoreInterface, error)
	FindByFilter(ctx context.Context, filter IgnoreFilter, pagination *query.Pagination) ([]*IgnoreInterface, int64, error)
	Update(ctx context.Context, rule *IgnoreInterface) error
	Delete(ctx context.Context, id uint) error
}

// Matcher answers whether a URL is covered by the ignore list.
type Matcher struct {
	exact    map[string]struct{}
	patterns []string
}

func NewMatcher(rules []*IgnoreInterface) *Matcher {
	m := &Matcher{exact: make(map[string]struct{}, len(rules))}
	for _, rule := range rules {
		uri := strings.TrimSpace(rule.URI)
		if uri == "" {
			continue
		}
		if strings.Contains(uri, "*") {
			m.patterns = append(m.patterns, uri)
			continue
		}
		m.exact[uri] = struct{}{}
	}
	return m
}

func (m *Matcher) Matches(url string) bool {
	if m == nil {
		return false
	}
	if _, ok := m.exact[url]; ok {
		return true
	}
	for _, pattern := range m.patterns {
		if ok, err := path.Match(pattern, url); err == nil && ok {
			return true
		}
	}
	return false
}

// Len is the number of rules loaded into the matcher.
func (m *Matcher) Len() int {
	if m == nil {
		return 0
	}
	return len(m.exact) + len(m.patterns)
}
