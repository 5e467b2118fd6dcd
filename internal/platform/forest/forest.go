package forest

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
)

var (
	ErrNoSamples     = errors.New("forest: no training samples")
	ErrUnknownClass  = errors.New("forest: label outside class set")
	ErrShapeMismatch = errors.New("forest: rows and labels differ in length")
)

// RandomForest configures a bagged ensemble of CART classifiers.
// MaxFeatures 0 means sqrt of the feature count.
type RandomForest struct {
	Trees       int
	MaxFeatures int
	MinSplit    int
	MaxDepth    int
	Seed        uint64
	Workers     int
}

func New(seed uint64) RandomForest {
	return RandomForest{Trees: 100, MinSplit: 2, Seed: seed}
}

// Forest is a trained ensemble. It is safe for concurrent reads.
type Forest struct {
	classes []int
	trees   []*node
}

// Fit trains the ensemble. classes fixes the output order of PredictProba;
// classes absent from y keep probability 0. Trees are grown concurrently but
// each one draws from its own generator derived from Seed and its index, so
// the result does not depend on scheduling.
func (rf RandomForest) Fit(ctx context.Context, x [][]float64, y []int, classes []int) (*Forest, error) {
	if len(x) == 0 {
		return nil, ErrNoSamples
	}
	if len(x) != len(y) {
		return nil, fmt.Errorf("%w: %d rows, %d labels", ErrShapeMismatch, len(x), len(y))
	}

	index := make(map[int]int, len(classes))
	for i, c := range classes {
		index[c] = i
	}
	encoded := make([]int, len(y))
	for i, label := range y {
		idx, ok := index[label]
		if !ok {
			return nil, fmt.Errorf("%w: %d", ErrUnknownClass, label)
		}
		encoded[i] = idx
	}

	trees := max(rf.Trees, 1)
	dims := len(x[0])
	maxFeatures := rf.MaxFeatures
	if maxFeatures <= 0 {
		maxFeatures = max(int(math.Sqrt(float64(dims))), 1)
	}
	maxFeatures = min(maxFeatures, dims)
	minSplit := max(rf.MinSplit, 2)

	workers := rf.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	out := &Forest{classes: append([]int(nil), classes...), trees: make([]*node, trees)}

	var wg sync.WaitGroup
	var submitErr error
	for t := 0; t < trees; t++ {
		if err := ctx.Err(); err != nil {
			submitErr = err
			break
		}
		t := t
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()

			rng := rand.New(rand.NewPCG(rf.Seed, uint64(t)))
			samples := make([]int, len(x))
			for i := range samples {
				samples[i] = rng.IntN(len(x))
			}
			b := &treeBuilder{
				x:           x,
				y:           encoded,
				classes:     len(classes),
				maxFeatures: maxFeatures,
				minSplit:    minSplit,
				maxDepth:    rf.MaxDepth,
				rng:         rng,
			}
			out.trees[t] = b.build(samples, 0)
		}); err != nil {
			wg.Done()
			submitErr = fmt.Errorf("submit tree to worker pool: %w", err)
			break
		}
	}
	wg.Wait()

	if submitErr != nil {
		return nil, submitErr
	}
	return out, nil
}

// PredictProba averages the leaf class distributions of every tree.
func (f *Forest) PredictProba(row []float64) []float64 {
	out := make([]float64, len(f.classes))
	for _, t := range f.trees {
		for i, p := range t.predict(row) {
			out[i] += p
		}
	}
	for i := range out {
		out[i] /= float64(len(f.trees))
	}
	return out
}

func (f *Forest) Classes() []int {
	return append([]int(nil), f.classes...)
}

func (f *Forest) Size() int {
	return len(f.trees)
}
