package cache

import (
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/mrz1836/cyclic/internal/cyclic"
	"github.com/mrz1836/cyclic/internal/metrics"
)

type codeKey struct {
	params  cyclic.Params
	lenient bool
}

func (k codeKey) String() string {
	return Key(k.params) + ":" + strconv.FormatBool(k.lenient)
}

// Codes memoizes built codes. Each configuration is built at most once at a
// time; concurrent callers share the build. Failed builds are not stored.
type Codes struct {
	mu      sync.RWMutex
	codes   map[codeKey]*cyclic.Code
	group   singleflight.Group
	metrics *metrics.Metrics
}

// NewCodes creates an empty code cache that reports to m. A nil m reports
// to metrics.Global.
func NewCodes(m *metrics.Metrics) *Codes {
	if m == nil {
		m = metrics.Global
	}
	return &Codes{
		codes:   make(map[codeKey]*cyclic.Code),
		metrics: m,
	}
}

// Get returns the code for p, building it on first use. allowAmbiguous is
// part of the key, so a lenient build never answers a strict request.
func (c *Codes) Get(p cyclic.Params, allowAmbiguous bool) (*cyclic.Code, error) {
	key := codeKey{params: p, lenient: allowAmbiguous}

	c.mu.RLock()
	code, ok := c.codes[key]
	c.mu.RUnlock()
	if ok {
		c.metrics.RecordCacheHit()
		return code, nil
	}
	c.metrics.RecordCacheMiss()

	v, err, _ := c.group.Do(key.String(), func() (interface{}, error) {
		c.mu.RLock()
		built, ok := c.codes[key]
		c.mu.RUnlock()
		if ok {
			return built, nil
		}

		var opts []cyclic.Option
		if allowAmbiguous {
			opts = append(opts, cyclic.WithAmbiguousTable())
		}

		start := time.Now()
		built, err := cyclic.BuildParams(p, opts...)
		c.metrics.RecordBuild(time.Since(start), err)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.codes[key] = built
		c.mu.Unlock()
		return built, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*cyclic.Code), nil //nolint:forcetypeassert // group only returns *cyclic.Code
}

// Len returns the number of cached codes.
func (c *Codes) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.codes)
}

// Forget drops every cached code.
func (c *Codes) Forget() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.codes = make(map[codeKey]*cyclic.Code)
}
