package landmgr

import "github.com/wkalt/tileland/merge"

type config struct {
	lenientIDs bool
	mergeOpts  []merge.Option
}

// Option is an option for the land manager.
type Option func(*config)

// WithLenientIDs makes read-only lookups map malformed identifier text to the
// tile at (0, 0) instead of failing. Mutating calls always reject malformed
// identifiers.
func WithLenientIDs() Option {
	return func(c *config) {
		c.lenientIDs = true
	}
}

// WithMergeOpts passes the supplied options to the merge registry.
func WithMergeOpts(opts ...merge.Option) Option {
	return func(c *config) {
		c.mergeOpts = append(c.mergeOpts, opts...)
	}
}
