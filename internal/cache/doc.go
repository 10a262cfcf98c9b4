// Package cache provides a generic LRU cache with a soft limit.
//
// The text package uses it to share glyph outlines between names: a few
// thousand names draw on a few dozen distinct glyphs, so almost every
// lookup after the first line is a hit.
//
//	c := cache.New[uint16, *Outline](512)
//	v, err := c.GetOrLoad(gid, func() (*Outline, error) { return load(gid) })
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
