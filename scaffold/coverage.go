// Copyright ©2020 the RagTag Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scaffold

import "github.com/biogo/store/step"

// count is an int type satisfying the step.Equaler interface.
type count int

// Equal returns whether c equals e. Equal assumes the underlying type of e
// is a count.
func (c count) Equal(e step.Equaler) bool { return c == e.(count) }

// covered returns whether ivs tiles the range from zero to its maximum end
// exactly once, with no uncovered positions and no overlap.
func covered(ivs []interval) bool {
	if len(ivs) == 0 {
		return true
	}
	var max int
	for _, iv := range ivs {
		if iv.end > max {
			max = iv.end
		}
	}
	vec, err := step.New(0, max, count(0))
	if err != nil {
		return false
	}
	for _, iv := range ivs {
		err := vec.ApplyRange(iv.start, iv.end, func(e step.Equaler) step.Equaler {
			return e.(count) + 1
		})
		if err != nil {
			return false
		}
	}
	ok := true
	vec.Do(func(start, end int, e step.Equaler) {
		if e.(count) != 1 {
			ok = false
		}
	})
	return ok
}
