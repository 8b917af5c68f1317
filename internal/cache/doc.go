// Package cache provides a small generic cache with a soft size limit.
//
// It memoizes values that are expensive to derive and requested with a
// handful of distinct keys, such as font metrics per pixel size:
//
//	c := cache.New[float64, text.CellMetrics](8)
//	m, err := c.Load(size, func() (text.CellMetrics, error) {
//	    return measure(size)
//	})
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
