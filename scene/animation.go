// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"time"

	"cogentcore.org/scene3d/shape"
)

// SphereAnimation cycles the sphere tessellation once per second,
// from Min segments up to Min+Period-1, then back to Min.
type SphereAnimation struct {
	Radius float32
	Min    int
	Period int

	count int
}

// NewSphereAnimation returns the animation with the default 10 unit
// radius cycling from 3 to 17 segments.
func NewSphereAnimation() *SphereAnimation {
	return &SphereAnimation{Radius: 10, Min: 3, Period: 15}
}

// Count returns the segment count at the given elapsed time.
func (sa *SphereAnimation) Count(elapsed time.Duration) int {
	return sa.Min + int(elapsed/time.Second)%max(1, sa.Period)
}

// Update returns the sphere for the elapsed time, or nil if the count
// has not changed since the last call.
func (sa *SphereAnimation) Update(elapsed time.Duration) (*shape.Geometry, error) {
	n := sa.Count(elapsed)
	if n == sa.count {
		return nil, nil
	}
	geom, err := shape.Build(shape.NewSphere(sa.Radius, n, n-1))
	if err != nil {
		return nil, err
	}
	sa.count = n
	return geom, nil
}
