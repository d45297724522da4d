/*
Copyright © 2024 the InMAP authors.
This file is part of pollutionmap.

pollutionmap is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

pollutionmap is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with pollutionmap.  If not, see <http://www.gnu.org/licenses/>.
*/

package pollutionmap

import (
	"context"
	"fmt"

	"github.com/ctessum/requestcache"
)

// CachedLoader keeps recently loaded DataSets in memory so that
// repeated requests for the same pollutant and year are only read once.
// The DataSets it returns are shared and must not be modified.
// A CachedLoader is not safe for concurrent use.
type CachedLoader struct {
	cache *requestcache.Cache
}

type loadRequest struct {
	pollutant Pollutant
	year      string
}

// NewCachedLoader returns a loader that reads through l and holds up to
// size DataSets in memory. Failed loads are not cached.
func NewCachedLoader(l Loader, size int) *CachedLoader {
	return &CachedLoader{
		cache: requestcache.NewCache(func(ctx context.Context, req interface{}) (interface{}, error) {
			r := req.(loadRequest)
			return l.Load(r.pollutant, r.year)
		}, 1, requestcache.Memory(size)),
	}
}

// Load returns the DataSet for pollutant p and the given year.
func (c *CachedLoader) Load(p Pollutant, year string) (*DataSet, error) {
	key := fmt.Sprintf("%s_%s", p, year)
	r := c.cache.NewRequest(context.Background(), loadRequest{pollutant: p, year: year}, key)
	d, err := r.Result()
	if err != nil {
		return nil, err
	}
	return d.(*DataSet), nil
}

// Requests returns the number of requests received by the memory cache
// and by the underlying loader, in that order.
func (c *CachedLoader) Requests() (cache, loader int) {
	r := c.cache.Requests()
	return r[0], r[len(r)-1]
}
