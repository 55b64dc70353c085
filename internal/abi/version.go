// Copyright 2019 The abitest Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package abi defines the ABI version identifiers used throughout the
// campaign driver.
package abi

import (
	"sort"
	"strconv"
)

// Version identifies one setting of the VM's ABI version override.
// The zero of the domain is Baseline, which denotes a run without any
// version override (the VM's current ABI).
type Version int

// Baseline denotes the run that does not force an ABI version.
const Baseline Version = -1

// IsBaseline reports whether v denotes the unversioned baseline run.
func (v Version) IsBaseline() bool { return v == Baseline }

// String renders a version label. The baseline renders as "baseline",
// numbered versions as their decimal value.
func (v Version) String() string {
	if v.IsBaseline() {
		return "baseline"
	}
	return strconv.Itoa(int(v))
}

// Range returns the versions in [oldest, newest] in ascending order.
func Range(oldest, newest int) []Version {
	var vs []Version
	for v := oldest; v <= newest; v++ {
		vs = append(vs, Version(v))
	}
	return vs
}

// Sorted returns the keys of m in ascending order, with the baseline
// (if present) first. Reconciliation iterates versions in this order so
// that merged output is deterministic.
func Sorted[T any](m map[Version]T) []Version {
	vs := make([]Version, 0, len(m))
	for v := range m {
		vs = append(vs, v)
	}
	sort.Slice(vs, func(i, j int) bool { return vs[i] < vs[j] })
	return vs
}
