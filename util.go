package huffcoder

import (
	mathbits "math/bits"
)

func log2uint64(x uint64) int {
	if x == 0 {
		x = 1
	}
	return 64 - mathbits.LeadingZeros64(x)
}

// chunk is a half-open range [start, end) of an input slice.
type chunk struct {
	start int
	end   int
}

// splitChunks divides n items into at most parts contiguous, non-empty
// chunks of nearly equal size.  It returns nil when n is 0.
func splitChunks(n int, parts int) []chunk {
	if n <= 0 {
		return nil
	}
	if parts > n {
		parts = n
	}
	if parts < 1 {
		parts = 1
	}
	size := (n + parts - 1) / parts
	out := make([]chunk, 0, parts)
	for start := 0; start < n; start += size {
		end := start + size
		if end > n {
			end = n
		}
		out = append(out, chunk{start, end})
	}
	return out
}
