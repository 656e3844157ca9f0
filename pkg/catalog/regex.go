package catalog

import (
	"regexp"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/nainya/osinfodb/internal/logger"
	"github.com/nainya/osinfodb/internal/metrics"
)

// regexCache compiles catalog patterns once. Invalid patterns are cached as
// nil so the warning is logged once per expiry window.
type regexCache struct {
	cache   *gocache.Cache
	log     *logger.Logger
	metrics *metrics.Metrics
}

func newRegexCache(ttl time.Duration, log *logger.Logger, m *metrics.Metrics) *regexCache {
	return &regexCache{
		cache:   gocache.New(ttl, 3*ttl),
		log:     log.CatalogLogger("regex"),
		metrics: m,
	}
}

func (c *regexCache) compile(pattern string) *regexp.Regexp {
	if v, found := c.cache.Get(pattern); found {
		c.metrics.RecordRegexCache(true)
		re, _ := v.(*regexp.Regexp)
		return re
	}
	c.metrics.RecordRegexCache(false)

	re, err := regexp.Compile(`\A(?:` + pattern + `)`)
	if err != nil {
		c.log.Warn("invalid catalog pattern").
			Str("pattern", pattern).
			Err(err).
			Send()
		re = nil
	}
	c.cache.SetDefault(pattern, re)
	return re
}

// match applies the catalog pattern to a candidate value. An absent pattern
// matches anything; a present pattern never matches an absent value.
func (c *regexCache) match(pattern string, hasPattern bool, value string, hasValue bool) bool {
	if !hasPattern {
		return true
	}
	if !hasValue {
		return false
	}
	re := c.compile(pattern)
	return re != nil && re.MatchString(value)
}

// submatch returns the first capture group of pattern against value
func (c *regexCache) submatch(pattern, value string) (string, bool) {
	re := c.compile(pattern)
	if re == nil {
		return "", false
	}
	m := re.FindStringSubmatch(value)
	if len(m) < 2 || m[1] == "" {
		return "", false
	}
	return m[1], true
}
