package cli

import (
	"github.com/mrz1836/cyclic/internal/cache"
	"github.com/mrz1836/cyclic/internal/cyclic"
)

var (
	_ CodeProvider    = (*cache.Codes)(nil)
	_ PropertyStorage = (*cache.FileStorage)(nil)
)

// CodeProvider hands out built codes. Implementations may share one Code
// between callers; a Code is read-only once built.
type CodeProvider interface {
	Get(p cyclic.Params, allowAmbiguous bool) (*cyclic.Code, error)
}

// PropertyStorage persists the code property cache between runs. Load
// returns an empty cache when nothing has been saved yet.
type PropertyStorage interface {
	Load() (*cache.PropertyCache, error)
	Save(c *cache.PropertyCache) error
}
