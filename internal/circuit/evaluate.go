package circuit

import "github.com/cardveil/holdem/internal/deck"

// Category weights for the exclusive-indicator sum in Evaluate5.
const (
	highCardWeight      = uint64(HighCard)
	onePairWeight       = uint64(OnePair)
	twoPairWeight       = uint64(TwoPair)
	threeOfAKindWeight  = uint64(ThreeOfAKind)
	straightWeight      = uint64(Straight)
	flushWeight         = uint64(Flush)
	fullHouseWeight     = uint64(FullHouse)
	fourOfAKindWeight   = uint64(FourOfAKind)
	straightFlushWeight = uint64(StraightFlush)
)

// Rank constants used by the wheel (A-5-4-3-2) detection.
const (
	rankAce   = 12
	rankFive  = 3
	rankFour  = 2
	rankThree = 1
	rankTwo   = 0
)

// wheelKickers is the tie-break ordering for the wheel straight: the five
// plays high and the ace low, below the two.
var wheelKickers = [5]uint64{rankFive, rankFour, rankThree, rankTwo, rankAce}

// Evaluate5 scores a 5-card hand. Pure and total: any 5 distinct cards map
// to a definite HandScore. The caller guarantees distinctness; the circuit
// cannot check it without branching on secrets.
func Evaluate5(hand [5]deck.Card) HandScore {
	var ranks, suits [5]uint64
	for i := 0; i < 5; i++ {
		ranks[i] = uint64(hand[i]) / 4
		suits[i] = uint64(hand[i]) % 4
	}
	sortDesc5(ranks[:])

	// Rank histogram, built obliviously: every bucket scans every card so
	// no write index ever depends on a card value.
	var counts [13]uint64
	for r := 0; r < 13; r++ {
		for i := 0; i < 5; i++ {
			counts[r] += ctEq(ranks[i], uint64(r))
		}
	}

	isFlush := ctEq(suits[0], suits[1]) &
		ctEq(suits[0], suits[2]) &
		ctEq(suits[0], suits[3]) &
		ctEq(suits[0], suits[4])

	// Five distinct ranks spanning exactly four steps; ranks are sorted
	// descending so the subtraction cannot wrap.
	isRun := ctEq(ranks[0]-ranks[4], 4) &
		ctNe(ranks[0], ranks[1]) &
		ctNe(ranks[1], ranks[2]) &
		ctNe(ranks[2], ranks[3]) &
		ctNe(ranks[3], ranks[4])

	isWheel := ctEq(ranks[0], rankAce) &
		ctEq(ranks[1], rankFive) &
		ctEq(ranks[2], rankFour) &
		ctEq(ranks[3], rankThree) &
		ctEq(ranks[4], rankTwo)

	isStraight := isRun | isWheel
	isStraightFlush := isStraight & isFlush

	var numQuads, numTrips, numPairs uint64
	for r := 0; r < 13; r++ {
		numQuads += ctEq(counts[r], 4)
		numTrips += ctEq(counts[r], 3)
		numPairs += ctEq(counts[r], 2)
	}

	isQuads := ctEq(numQuads, 1)
	isFullHouse := ctEq(numTrips, 1) & ctEq(numPairs, 1)
	isTrips := ctEq(numTrips, 1) & ctEq(numPairs, 0)
	isTwoPair := ctEq(numPairs, 2)
	isOnePair := ctEq(numPairs, 1) & ctEq(numTrips, 0)

	// Exclusive category resolution: each term's indicator negates every
	// higher-priority detection, so exactly one term contributes.
	not := func(b uint64) uint64 { return b ^ 1 }
	category := isStraightFlush*straightFlushWeight +
		(not(isStraightFlush)&isQuads)*fourOfAKindWeight +
		(not(isStraightFlush)&not(isQuads)&isFullHouse)*fullHouseWeight +
		(not(isStraightFlush)&not(isQuads)&not(isFullHouse)&isFlush)*flushWeight +
		(not(isStraightFlush)&not(isQuads)&not(isFullHouse)&not(isFlush)&isStraight)*straightWeight +
		(not(isStraight)&not(isFlush)&isTrips)*threeOfAKindWeight +
		(not(isStraight)&not(isFlush)&not(isTrips)&isTwoPair)*twoPairWeight +
		(not(isStraight)&not(isFlush)&not(isTrips)&not(isTwoPair)&isOnePair)*onePairWeight

	// Kicker ordering: sort rank buckets by (count, rank) descending. One
	// ordering covers every category: the trip rank of a full house leads,
	// the higher pair of two-pair leads, a bare high-card hand falls back
	// to plain descending ranks.
	var buckets [13]uint64
	for r := 0; r < 13; r++ {
		buckets[r] = counts[r]<<4 | uint64(r)
	}
	sortDesc(buckets[:], sortNet13)

	// Expand buckets into the 5 kicker slots without a data-dependent
	// cursor: slot s takes bucket b's rank when s falls inside b's
	// prefix-sum range. A fixed 5x13 grid of selects.
	var kickers [5]uint64
	start := uint64(0)
	for b := 0; b < 13; b++ {
		count := buckets[b] >> 4
		rank := buckets[b] & 0xF
		for s := 0; s < 5; s++ {
			inRange := ctGt(uint64(s)+1, start) & ctLt(uint64(s), start+count)
			kickers[s] |= -inRange & rank
		}
		start += count
	}

	for i := 0; i < 5; i++ {
		kickers[i] = ctSelect(isWheel, wheelKickers[i], kickers[i])
	}

	score := category << 20
	score |= kickers[0] << 16
	score |= kickers[1] << 12
	score |= kickers[2] << 8
	score |= kickers[3] << 4
	score |= kickers[4]
	return HandScore(score)
}
