package forest

import (
	"math/rand/v2"
	"sort"
)

type node struct {
	feature   int
	threshold float64
	left      *node
	right     *node
	proba     []float64
}

func (n *node) leaf() bool { return n.left == nil }

func (n *node) predict(row []float64) []float64 {
	for !n.leaf() {
		if row[n.feature] <= n.threshold {
			n = n.left
		} else {
			n = n.right
		}
	}
	return n.proba
}

// treeBuilder grows one CART tree with Gini impurity. Samples are indexes
// into x and may repeat (bootstrap).
type treeBuilder struct {
	x           [][]float64
	y           []int
	classes     int
	maxFeatures int
	minSplit    int
	maxDepth    int
	rng         *rand.Rand
}

func (b *treeBuilder) build(samples []int, depth int) *node {
	counts := make([]int, b.classes)
	for _, s := range samples {
		counts[b.y[s]]++
	}

	n := &node{proba: distribution(counts, len(samples))}
	if len(samples) < b.minSplit || pure(counts) || (b.maxDepth > 0 && depth >= b.maxDepth) {
		return n
	}

	feature, threshold, ok := b.bestSplit(samples, counts)
	if !ok {
		return n
	}

	left := make([]int, 0, len(samples))
	right := make([]int, 0, len(samples))
	for _, s := range samples {
		if b.x[s][feature] <= threshold {
			left = append(left, s)
		} else {
			right = append(right, s)
		}
	}

	n.feature = feature
	n.threshold = threshold
	n.left = b.build(left, depth+1)
	n.right = b.build(right, depth+1)
	return n
}

// bestSplit examines maxFeatures random features and keeps drawing more
// only while none of the examined ones can separate the samples.
func (b *treeBuilder) bestSplit(samples []int, parent []int) (int, float64, bool) {
	dims := len(b.x[0])
	order := b.rng.Perm(dims)

	bestFeature, bestThreshold := -1, 0.0
	bestScore := 0.0
	sorted := append([]int(nil), samples...)

	for visited, f := range order {
		if visited >= b.maxFeatures && bestFeature >= 0 {
			break
		}

		sort.SliceStable(sorted, func(i, j int) bool { return b.x[sorted[i]][f] < b.x[sorted[j]][f] })

		left := make([]int, b.classes)
		right := append([]int(nil), parent...)
		total := len(sorted)
		for i := 0; i < total-1; i++ {
			c := b.y[sorted[i]]
			left[c]++
			right[c]--

			lo, hi := b.x[sorted[i]][f], b.x[sorted[i+1]][f]
			if lo == hi {
				continue
			}

			nl := i + 1
			nr := total - nl
			score := (float64(nl)*gini(left, nl) + float64(nr)*gini(right, nr)) / float64(total)
			if bestFeature < 0 || score < bestScore {
				bestFeature = f
				bestThreshold = lo + (hi-lo)/2
				bestScore = score
			}
		}
	}
	return bestFeature, bestThreshold, bestFeature >= 0
}

func gini(counts []int, total int) float64 {
	if total == 0 {
		return 0
	}
	impurity := 1.0
	for _, c := range counts {
		p := float64(c) / float64(total)
		impurity -= p * p
	}
	return impurity
}

func pure(counts []int) bool {
	nonZero := 0
	for _, c := range counts {
		if c > 0 {
			nonZero++
		}
	}
	return nonZero <= 1
}

func distribution(counts []int, total int) []float64 {
	out := make([]float64, len(counts))
	if total == 0 {
		return out
	}
	for i, c := range counts {
		out[i] = float64(c) / float64(total)
	}
	return out
}
