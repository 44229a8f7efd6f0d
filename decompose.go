package fours

// DecomposePow2 returns the powers of two whose sum is n, in ascending
// order, i.e. the set bits of n. It returns nil for n ≤ 0.
//
// Example:
//
//	37 => [ 1, 4, 32 ].
func DecomposePow2(n int64) []int64 {
	var parts []int64
	for bit := 0; n > 0; bit++ {
		if n&1 != 0 {
			parts = append(parts, int64(1)<<bit)
		}
		n >>= 1
	}
	return parts
}
