package circuit

import (
	"sort"

	"github.com/cardveil/holdem/internal/deck"
)

// refEvaluate is a plain branching evaluator used as the test oracle. It is
// written with ordinary ifs and library sorts, sharing no machinery with the
// branch-free implementation.
func refEvaluate(hand [5]deck.Card) HandScore {
	ranks := make([]int, 5)
	suits := make([]int, 5)
	for i, c := range hand {
		ranks[i] = int(c) / 4
		suits[i] = int(c) % 4
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ranks)))

	counts := map[int]int{}
	for _, r := range ranks {
		counts[r]++
	}

	flush := true
	for _, s := range suits[1:] {
		if s != suits[0] {
			flush = false
		}
	}

	distinct := len(counts) == 5
	wheel := distinct && ranks[0] == 12 && ranks[1] == 3 && ranks[2] == 2 && ranks[3] == 1 && ranks[4] == 0
	straight := (distinct && ranks[0]-ranks[4] == 4) || wheel

	var pairs, trips, quads int
	for _, n := range counts {
		switch n {
		case 2:
			pairs++
		case 3:
			trips++
		case 4:
			quads++
		}
	}

	var cat Category
	switch {
	case straight && flush:
		cat = StraightFlush
	case quads == 1:
		cat = FourOfAKind
	case trips == 1 && pairs == 1:
		cat = FullHouse
	case flush:
		cat = Flush
	case straight:
		cat = Straight
	case trips == 1:
		cat = ThreeOfAKind
	case pairs == 2:
		cat = TwoPair
	case pairs == 1:
		cat = OnePair
	default:
		cat = HighCard
	}

	// Kickers: rank buckets ordered by count then rank, expanded.
	type bucket struct{ count, rank int }
	var buckets []bucket
	for r, n := range counts {
		buckets = append(buckets, bucket{n, r})
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].count != buckets[j].count {
			return buckets[i].count > buckets[j].count
		}
		return buckets[i].rank > buckets[j].rank
	})
	var kickers []int
	for _, b := range buckets {
		for i := 0; i < b.count; i++ {
			kickers = append(kickers, b.rank)
		}
	}
	if wheel {
		kickers = []int{3, 2, 1, 0, 12}
	}

	score := uint64(cat) << 20
	for i, k := range kickers {
		score |= uint64(k) << (16 - 4*i)
	}
	return HandScore(score)
}

func hand5(s string) [5]deck.Card {
	cards := deck.MustParseCards(s)
	if len(cards) != 5 {
		panic("want 5 cards: " + s)
	}
	var h [5]deck.Card
	copy(h[:], cards)
	return h
}

func hand7(s string) [7]deck.Card {
	cards := deck.MustParseCards(s)
	if len(cards) != 7 {
		panic("want 7 cards: " + s)
	}
	var h [7]deck.Card
	copy(h[:], cards)
	return h
}
