package cluster

import (
	"gonum.org/v1/gonum/stat"
)

// StandardScaler centres every column on its mean and divides by its
// population standard deviation. Constant columns keep scale 1.
type StandardScaler struct {
	Mean  []float64
	Scale []float64
}

func FitScaler(x [][]float64) StandardScaler {
	if len(x) == 0 {
		return StandardScaler{}
	}

	dims := len(x[0])
	s := StandardScaler{Mean: make([]float64, dims), Scale: make([]float64, dims)}
	col := make([]float64, len(x))
	for j := 0; j < dims; j++ {
		for i := range x {
			col[i] = x[i][j]
		}
		mean, std := stat.PopMeanStdDev(col, nil)
		if std == 0 {
			std = 1
		}
		s.Mean[j] = mean
		s.Scale[j] = std
	}
	return s
}

func (s StandardScaler) Transform(x [][]float64) [][]float64 {
	out := make([][]float64, len(x))
	for i, row := range x {
		scaled := make([]float64, len(row))
		for j, v := range row {
			scaled[j] = (v - s.Mean[j]) / s.Scale[j]
		}
		out[i] = scaled
	}
	return out
}

// FitTransform is FitScaler followed by Transform on the same rows.
func FitTransform(x [][]float64) ([][]float64, StandardScaler) {
	s := FitScaler(x)
	return s.Transform(x), s
}
