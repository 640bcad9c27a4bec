// Copyright 2016 The Galileo Glass UI Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package collision

import "math"

// AABB is an axis-aligned bounding box used for both broad-phase culling
// and world-bounds checks.
type AABB struct {
	MinX, MinY, MaxX, MaxY float64
}

// Intersects reports whether a and b overlap.
func (a AABB) Intersects(b AABB) bool {

	return a.MinX <= b.MaxX && a.MaxX >= b.MinX && a.MinY <= b.MaxY && a.MaxY >= b.MinY
}

// Item is a broad-phase candidate: an opaque id plus its current AABB.
type Item struct {
	ID  string
	Box AABB
}

const overflowThreshold = 16

type entry struct {
	id         string
	cellX, cellY int
}

// SpatialHash is the broad phase mandated by §4.3.4: a grid sized to twice
// the largest body's bounding radius, backed by a resizable hash table
// whose bucket count doubles (amortized O(n) rehash) when any bucket grows
// past a fixed occupancy threshold. It generalizes
// sarat-asymmetrica-foldvedic/engines/spatial_hash.go's fixed nine-bucket
// digital-root scheme into an arbitrary, resizable bucket count, since the
// spec requires overflow-driven resize that a fixed bucket count cannot
// provide.
type SpatialHash struct {
	cellSize  float64
	tableSize int
	buckets   [][]entry
}

// NewSpatialHash creates a hash with the given cell size (typically twice
// the largest body's bounding radius) and a starting table size of 64.
func NewSpatialHash(cellSize float64) *SpatialHash {

	if cellSize <= 0 {
		cellSize = 1
	}
	return &SpatialHash{
		cellSize:  cellSize,
		tableSize: 64,
		buckets:   make([][]entry, 64),
	}
}

// Resize replaces the cell size used for subsequent Rebuild calls. Called
// once per tick by the engine with 2x the current largest bounding radius.
func (h *SpatialHash) Resize(cellSize float64) {

	if cellSize <= 0 {
		cellSize = 1
	}
	h.cellSize = cellSize
}

func (h *SpatialHash) hash(cx, cy int) int {

	hv := (cx * 73856093) ^ (cy * 19349663)
	hv %= h.tableSize
	if hv < 0 {
		hv += h.tableSize
	}
	return hv
}

func (h *SpatialHash) cellRange(box AABB) (cx0, cy0, cx1, cy1 int) {

	cx0 = int(math.Floor(box.MinX / h.cellSize))
	cy0 = int(math.Floor(box.MinY / h.cellSize))
	cx1 = int(math.Floor(box.MaxX / h.cellSize))
	cy1 = int(math.Floor(box.MaxY / h.cellSize))
	return
}

func (h *SpatialHash) insert(id string, box AABB) {

	cx0, cy0, cx1, cy1 := h.cellRange(box)
	for cx := cx0; cx <= cx1; cx++ {
		for cy := cy0; cy <= cy1; cy++ {
			idx := h.hash(cx, cy)
			h.buckets[idx] = append(h.buckets[idx], entry{id: id, cellX: cx, cellY: cy})
			if len(h.buckets[idx]) > overflowThreshold {
				h.growAndRehash(cx, cy)
			}
		}
	}
}

// growAndRehash doubles the table size and reinserts every entry. Flagged
// by the single overflowing bucket passed in for logging/debugging only;
// the rehash itself always walks the whole table, which is amortized O(n)
// across inserts because doubling halves the expected future overflow
// frequency geometrically.
func (h *SpatialHash) growAndRehash(int, int) {

	old := h.buckets
	h.tableSize *= 2
	h.buckets = make([][]entry, h.tableSize)
	for _, bucket := range old {
		for _, e := range bucket {
			idx := h.hash(e.cellX, e.cellY)
			h.buckets[idx] = append(h.buckets[idx], e)
		}
	}
}

// FindPairs rebuilds the hash from items and returns every pair of ids
// that share at least one cell, deduplicated. This is the broad-phase
// candidate set; narrow phase still confirms actual overlap.
func (h *SpatialHash) FindPairs(items []Item) [][2]string {

	for i := range h.buckets {
		h.buckets[i] = h.buckets[i][:0]
	}
	for _, it := range items {
		h.insert(it.ID, it.Box)
	}

	seen := make(map[[2]string]bool)
	var pairs [][2]string
	for _, bucket := range h.buckets {
		for i := 0; i < len(bucket); i++ {
			for j := i + 1; j < len(bucket); j++ {
				a, b := bucket[i].id, bucket[j].id
				if a == b {
					continue
				}
				if a > b {
					a, b = b, a
				}
				k := [2]string{a, b}
				if seen[k] {
					continue
				}
				seen[k] = true
				pairs = append(pairs, k)
			}
		}
	}
	return pairs
}
