// Package gendata generates synthetic workloads for the benchmark CLI. It plays the role original_source/benches
// /dlist_bench.rs hands to the lipsum crate, swapped for the nearest
// equivalent in the retrieved pack: lancet's random-string generator.
package gendata

import (
	"github.com/duke-git/lancet/v2/random"
	"github.com/samber/lo"
)

// Payloads returns n random strings, each length bytes long, suitable for
// driving a ByteLengthMeasurer-weighted DList.
func Payloads(n, length int) []string {
	return lo.Map(lo.Range(n), func(_ int, _ int) string {
		return random.RandString(length)
	})
}

// VariableLengthPayloads returns n random strings whose lengths are
// uniformly drawn from [minLength, maxLength], modeling the uneven block
// sizes a real append-only log would see.
func VariableLengthPayloads(n, minLength, maxLength int) []string {
	return lo.Map(lo.Range(n), func(_ int, _ int) string {
		return random.RandString(random.RandInt(minLength, maxLength+1))
	})
}
