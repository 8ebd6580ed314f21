package rank

import (
	"encoding/binary"
	"math"
	"sync"

	"github.com/segmentio/fasthash/fnv1a"
)

// FitCache remembers fits by a hash of their dataset, variant, and sampler
// settings. Any change to the data or configuration changes the key, which is
// the invalidation rule: stale entries are simply never looked up again. The
// cache is explicit state owned by whoever constructs it; there is no package
// global.
type FitCache struct {
	mu   sync.Mutex
	fits map[uint64]*Fit
}

// NewFitCache returns an empty cache.
func NewFitCache() *FitCache {
	return &FitCache{fits: make(map[uint64]*Fit)}
}

// Key hashes a dataset, model variant, and configuration into a cache key.
func (c *FitCache) Key(data *Dataset, spec ModelSpec, cfg Config) uint64 {
	spec = spec.normalize()

	buf := make([]byte, 0, 8*(4+len(data.Prior)+len(data.Team1)*2+len(data.Diff)*2)+32)
	buf = appendUint64(buf, uint64(data.NTeams))
	for _, v := range data.Prior {
		buf = appendFloat64(buf, v)
	}
	buf = appendUint64(buf, uint64(len(data.Diff)))
	for g := range data.Diff {
		buf = appendUint64(buf, uint64(data.Team1[g]))
		buf = appendUint64(buf, uint64(data.Team2[g]))
		buf = appendFloat64(buf, data.Diff[g])
		buf = appendFloat64(buf, data.InjDiff[g])
	}

	var flags uint64
	if spec.UseHomeAdvantage {
		flags |= 1
	}
	if spec.UseInjuryAdvantage {
		flags |= 2
	}
	buf = appendUint64(buf, flags)

	buf = appendFloat64(buf, cfg.DF)
	buf = appendFloat64(buf, cfg.HomeSigma)
	buf = appendFloat64(buf, cfg.InjSigma)
	buf = appendUint64(buf, uint64(cfg.Iterations))
	buf = appendUint64(buf, uint64(cfg.Warmup))
	buf = appendUint64(buf, uint64(cfg.Chains))
	buf = appendFloat64(buf, cfg.TargetAccept)
	buf = appendFloat64(buf, cfg.RHatThreshold)
	buf = appendUint64(buf, uint64(cfg.Seed))

	return fnv1a.HashBytes64(buf)
}

// Get returns the cached fit for a key, if any.
func (c *FitCache) Get(key uint64) (*Fit, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fit, ok := c.fits[key]
	return fit, ok
}

// Put stores a fit under a key, replacing any previous entry.
func (c *FitCache) Put(key uint64, fit *Fit) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fits[key] = fit
}

func appendUint64(buf []byte, v uint64) []byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return append(buf, b[:]...)
}

func appendFloat64(buf []byte, v float64) []byte {
	return appendUint64(buf, math.Float64bits(v))
}
