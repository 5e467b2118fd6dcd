package cluster

import (
	"errors"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var ErrNoSamples = errors.New("cluster: no samples")

const DefaultSeed = 42

// KMeans partitions rows into K groups with Lloyd iterations seeded by
// k-means++. The result only depends on the input and Seed.
type KMeans struct {
	K       int
	NInit   int
	MaxIter int
	Tol     float64
	Seed    uint64
}

func NewKMeans(k int) KMeans {
	return KMeans{K: k, NInit: 10, MaxIter: 300, Tol: 1e-4, Seed: DefaultSeed}
}

type Fit struct {
	Labels     []int
	Centroids  [][]float64
	Inertia    float64
	Iterations int
}

// Fit clusters x. K is lowered to the number of distinct rows when needed.
// Labels are numbered in order of first appearance.
func (km KMeans) Fit(x [][]float64) (Fit, error) {
	if len(x) == 0 {
		return Fit{}, ErrNoSamples
	}

	k := km.K
	if distinct := countDistinct(x); k > distinct {
		k = distinct
	}
	if k < 1 {
		k = 1
	}
	nInit := max(km.NInit, 1)
	maxIter := max(km.MaxIter, 1)
	tol := km.Tol * meanVariance(x)

	rng := rand.New(rand.NewPCG(km.Seed, km.Seed^0x9e3779b97f4a7c15))

	var best Fit
	for run := 0; run < nInit; run++ {
		centroids := initPlusPlus(x, k, rng)
		fit := lloyd(x, centroids, maxIter, tol)
		if run == 0 || fit.Inertia < best.Inertia {
			best = fit
		}
	}
	return relabel(best), nil
}

func initPlusPlus(x [][]float64, k int, rng *rand.Rand) [][]float64 {
	n := len(x)
	trials := 2 + int(math.Log(float64(k)))

	centroids := make([][]float64, 0, k)
	centroids = append(centroids, clone(x[rng.IntN(n)]))

	closest := make([]float64, n)
	for i := range x {
		closest[i] = sqDist(x[i], centroids[0])
	}

	for len(centroids) < k {
		potential := floats.Sum(closest)

		bestIdx := -1
		var bestPot float64
		var bestClosest []float64
		for t := 0; t < trials; t++ {
			idx := sampleWeighted(closest, potential, rng)
			candidate := make([]float64, n)
			for i := range x {
				candidate[i] = math.Min(closest[i], sqDist(x[i], x[idx]))
			}
			pot := floats.Sum(candidate)
			if bestIdx < 0 || pot < bestPot {
				bestIdx, bestPot, bestClosest = idx, pot, candidate
			}
		}

		centroids = append(centroids, clone(x[bestIdx]))
		closest = bestClosest
	}
	return centroids
}

func sampleWeighted(weights []float64, total float64, rng *rand.Rand) int {
	if total <= 0 {
		return rng.IntN(len(weights))
	}
	r := rng.Float64() * total
	var acc float64
	for i, w := range weights {
		acc += w
		if r < acc {
			return i
		}
	}
	return len(weights) - 1
}

func lloyd(x [][]float64, centroids [][]float64, maxIter int, tol float64) Fit {
	k := len(centroids)
	dims := len(x[0])
	labels := make([]int, len(x))

	iter := 0
	for iter < maxIter {
		iter++
		assign(x, centroids, labels)

		next := make([][]float64, k)
		counts := make([]int, k)
		for c := range next {
			next[c] = make([]float64, dims)
		}
		for i, row := range x {
			floats.Add(next[labels[i]], row)
			counts[labels[i]]++
		}
		for c := range next {
			if counts[c] == 0 {
				far := farthest(x, centroids, labels)
				copy(next[c], x[far])
				labels[far] = c
				continue
			}
			floats.Scale(1/float64(counts[c]), next[c])
		}

		var shift float64
		for c := range next {
			shift += sqDist(next[c], centroids[c])
		}
		centroids = next
		if shift <= tol {
			break
		}
	}

	inertia := assign(x, centroids, labels)
	return Fit{Labels: labels, Centroids: centroids, Inertia: inertia, Iterations: iter}
}

func assign(x [][]float64, centroids [][]float64, labels []int) float64 {
	var inertia float64
	for i, row := range x {
		best, bestDist := 0, math.Inf(1)
		for c, centre := range centroids {
			if d := sqDist(row, centre); d < bestDist {
				best, bestDist = c, d
			}
		}
		labels[i] = best
		inertia += bestDist
	}
	return inertia
}

func farthest(x [][]float64, centroids [][]float64, labels []int) int {
	idx, dist := 0, -1.0
	for i, row := range x {
		if d := sqDist(row, centroids[labels[i]]); d > dist {
			idx, dist = i, d
		}
	}
	return idx
}

func relabel(fit Fit) Fit {
	mapping := make(map[int]int, len(fit.Centroids))
	centroids := make([][]float64, 0, len(fit.Centroids))
	labels := make([]int, len(fit.Labels))
	for i, l := range fit.Labels {
		next, ok := mapping[l]
		if !ok {
			next = len(mapping)
			mapping[l] = next
			centroids = append(centroids, fit.Centroids[l])
		}
		labels[i] = next
	}
	for c, centre := range fit.Centroids {
		if _, ok := mapping[c]; !ok {
			mapping[c] = len(mapping)
			centroids = append(centroids, centre)
		}
	}
	fit.Labels = labels
	fit.Centroids = centroids
	return fit
}

func meanVariance(x [][]float64) float64 {
	dims := len(x[0])
	col := make([]float64, len(x))
	var total float64
	for j := 0; j < dims; j++ {
		for i := range x {
			col[i] = x[i][j]
		}
		_, std := stat.PopMeanStdDev(col, nil)
		total += std * std
	}
	return total / float64(dims)
}

func countDistinct(x [][]float64) int {
	seen := make(map[string]struct{}, len(x))
	var b strings.Builder
	for _, row := range x {
		b.Reset()
		for _, v := range row {
			b.WriteString(strconv.FormatUint(math.Float64bits(v), 16))
			b.WriteByte(',')
		}
		seen[b.String()] = struct{}{}
	}
	return len(seen)
}

func sqDist(a, b []float64) float64 {
	d := floats.Distance(a, b, 2)
	return d * d
}

func clone(row []float64) []float64 {
	return append([]float64(nil), row...)
}
