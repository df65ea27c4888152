/*
Copyright © 2026 the InMAP authors.
This file is part of InMAP.

InMAP is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

InMAP is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with InMAP.  If not, see <http://www.gnu.org/licenses/>.
*/

package clevels

import (
	"sync"

	"github.com/golang/groupcache/lru"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/clevels/internal/hash"
)

// Cache memoizes Plan. Because Plan is a pure function of its Request,
// a cached plan is always identical to a fresh one. Cache is safe for
// concurrent use. The zero value is an unbounded cache that logs to the
// standard logger.
type Cache struct {
	// Log receives debug messages about cache activity.
	Log logrus.FieldLogger

	mu           sync.Mutex
	lru          *lru.Cache
	hits, misses int
}

// NewCache returns a Cache holding up to maxEntries plans. If
// maxEntries is zero the cache has no limit.
func NewCache(maxEntries int) *Cache {
	return &Cache{
		Log: logrus.StandardLogger(),
		lru: lru.New(maxEntries),
	}
}

// Plan returns the plan for r, computing it if it is not already
// cached. The returned LevelSpec is a copy and may be modified by the
// caller without affecting the cache. Errors are not cached.
func (c *Cache) Plan(r Request) (*LevelSpec, error) {
	key := hash.Hash(r)
	log := c.logger()
	c.mu.Lock()
	if c.lru == nil {
		c.lru = lru.New(0)
	}
	v, ok := c.lru.Get(key)
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	c.mu.Unlock()

	if ok {
		log.WithFields(logrus.Fields{"key": key}).Debug("clevels: cache hit")
		return v.(*LevelSpec).Clone(), nil
	}

	spec, err := Plan(r)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"key":   key,
		"style": r.Style,
		"cdelt": r.Cdelt,
		"ndiv":  r.Ndiv,
		"fills": len(spec.FillBoundaries),
		"lines": len(spec.LineBoundaries),
	}).Debug("clevels: cache miss")

	c.mu.Lock()
	c.lru.Add(key, spec)
	c.mu.Unlock()
	return spec.Clone(), nil
}

// Stats returns the number of cache hits and misses so far and the
// number of plans currently held.
func (c *Cache) Stats() (hits, misses, entries int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lru == nil {
		return c.hits, c.misses, 0
	}
	return c.hits, c.misses, c.lru.Len()
}

func (c *Cache) logger() logrus.FieldLogger {
	if c.Log == nil {
		return logrus.StandardLogger()
	}
	return c.Log
}
