package execution

import (
	"github.com/ZabehCruz/pybryt/pkg/domain/types"
	"github.com/ZabehCruz/pybryt/pkg/footprint"
)

// Collector pairs a footprint under construction with the token tracing is
// activated against. A collector belongs to exactly one activation.
type Collector struct {
	fp        *footprint.Footprint
	token     types.CollectorToken
	skipTypes map[string]struct{}
}

// CollectorOption configures a collector at creation time.
type CollectorOption func(*Collector)

// WithSkipTypes drops observations whose snapshot type name is listed.
func WithSkipTypes(typeNames ...string) CollectorOption {
	return func(c *Collector) {
		for _, name := range typeNames {
			c.skipTypes[name] = struct{}{}
		}
	}
}

// NewCollector creates a collector with a fresh footprint and token.
func NewCollector(opts ...CollectorOption) *Collector {
	c := &Collector{
		fp:        footprint.New(),
		token:     types.NewCollectorToken(),
		skipTypes: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Footprint returns the footprint this collector accumulates into.
func (c *Collector) Footprint() *footprint.Footprint {
	return c.fp
}

// Token returns the collector's activation token.
func (c *Collector) Token() types.CollectorToken {
	return c.token
}

// Observe records a snapshot at the footprint's current step, unless its
// type is configured to be skipped.
func (c *Collector) Observe(value footprint.Snapshot) {
	if _, skip := c.skipTypes[value.Type]; skip {
		return
	}
	c.fp.Append(value)
}

// Step advances the footprint's step counter by one.
func (c *Collector) Step() {
	c.fp.IncrementCounter()
}
