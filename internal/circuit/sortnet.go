package circuit

// Sorting networks. A network is a fixed schedule of compare-exchange pairs
// whose shape depends only on the element count, never on element values,
// so sorting through one is data-independent.

// sortNet5 is the optimal 9-comparator network for 5 elements (Knuth,
// TAOCP vol. 3). Applied with the descending compare-exchange it sorts
// largest-first.
var sortNet5 = [9][2]int{
	{0, 1}, {3, 4}, {2, 4}, {2, 3}, {1, 4},
	{0, 3}, {0, 2}, {1, 3}, {1, 2},
}

// Comparator schedules for the histogram-bucket sort (13 elements) and the
// full-deck shuffle sort (52 elements), generated once from the deck-size
// constants at package load.
var (
	sortNet13 = batcherPairs(13)
	sortNet52 = batcherPairs(52)
)

// sortDesc5 sorts 5 words largest-first through the fixed network.
func sortDesc5(a []uint64) {
	for _, p := range sortNet5 {
		cex(a, p[0], p[1])
	}
}

// sortDesc sorts a largest-first through the given comparator schedule.
func sortDesc(a []uint64, pairs [][2]int) {
	for _, p := range pairs {
		cex(a, p[0], p[1])
	}
}

// batcherPairs generates Batcher's odd-even mergesort comparator schedule
// for n elements. The iterative formulation below handles arbitrary n, not
// just powers of two. The schedule is a pure function of n.
func batcherPairs(n int) [][2]int {
	var pairs [][2]int
	for p := 1; p < n; p <<= 1 {
		for k := p; k >= 1; k >>= 1 {
			for j := k % p; j+k < n; j += 2 * k {
				for i := 0; i < k && i+j+k < n; i++ {
					if (i+j)/(2*p) == (i+j+k)/(2*p) {
						pairs = append(pairs, [2]int{i + j, i + j + k})
					}
				}
			}
		}
	}
	return pairs
}
