package timeseries

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/optimize"
)

var (
	ErrTooShort = errors.New("timeseries: series too short for differencing order")
	ErrFit      = errors.New("timeseries: model fit failed")
)

// ARIMA is an autoregressive integrated moving-average model without a
// constant term, fitted by conditional sum of squares with zero pre-sample
// values. The optimiser works on unconstrained values that are mapped through
// partial autocorrelations, so every fit has a stationary AR part and an
// invertible MA part. Ridge adds a small L2 penalty on those values so long
// lag orders stay identifiable on short series.
type ARIMA struct {
	P     int
	D     int
	Q     int
	Ridge float64

	MaxIterations  int
	MaxEvaluations int
}

func NewARIMA(p, d, q int) ARIMA {
	return ARIMA{P: p, D: d, Q: q, Ridge: 1e-3, MaxIterations: 2000, MaxEvaluations: 40000}
}

// Fitted holds the estimated coefficients and the state needed to forecast.
type Fitted struct {
	AR     []float64
	MA     []float64
	Sigma2 float64

	d      int
	w      []float64
	resid  []float64
	levels []float64
}

func (m ARIMA) Fit(series []float64) (*Fitted, error) {
	if len(series) <= m.D {
		return nil, fmt.Errorf("%w: %d points, d=%d", ErrTooShort, len(series), m.D)
	}
	if !finite(series) {
		return nil, fmt.Errorf("%w: series contains non-finite values", ErrFit)
	}

	w, levels := Difference(series, m.D)
	params := make([]float64, m.P+m.Q)

	if len(params) > 0 {
		problem := optimize.Problem{
			Func: func(x []float64) float64 {
				ar, ma := m.coefficients(x)
				resid := residuals(w, ar, ma)
				obj := meanSquare(resid) + m.Ridge*floats.Dot(x, x)
				if math.IsNaN(obj) || math.IsInf(obj, 0) {
					return math.MaxFloat64
				}
				return obj
			},
		}
		settings := &optimize.Settings{
			MajorIterations: m.MaxIterations,
			FuncEvaluations: m.MaxEvaluations,
		}

		res, err := optimize.Minimize(problem, params, settings, &optimize.NelderMead{})
		if res == nil {
			return nil, fmt.Errorf("%w: %v", ErrFit, err)
		}
		if res.F == math.MaxFloat64 || !finite(res.X) {
			return nil, fmt.Errorf("%w: objective is not finite (status %v)", ErrFit, res.Status)
		}
		params = res.X
	}

	ar, ma := m.coefficients(params)
	resid := residuals(w, ar, ma)

	return &Fitted{
		AR:     ar,
		MA:     ma,
		Sigma2: meanSquare(resid),
		d:      m.D,
		w:      w,
		resid:  resid,
		levels: levels,
	}, nil
}

// coefficients maps optimiser values to AR and MA coefficients.
func (m ARIMA) coefficients(x []float64) (ar, ma []float64) {
	ar = constrainStationary(x[:m.P])
	ma = constrainStationary(x[m.P:])
	for i := range ma {
		ma[i] = -ma[i]
	}
	return ar, ma
}

// constrainStationary turns unconstrained values into the coefficients of a
// stationary AR polynomial. Each value becomes a partial autocorrelation in
// (-1, 1) and the Durbin-Levinson recursion builds the coefficients from
// them. Negating the result gives an invertible MA polynomial.
func constrainStationary(u []float64) []float64 {
	n := len(u)
	cur := make([]float64, n)
	prev := make([]float64, n)
	for k, x := range u {
		r := x / math.Sqrt(1+x*x)
		for i := 0; i < k; i++ {
			cur[i] = prev[i] - r*prev[k-i-1]
		}
		cur[k] = r
		copy(prev[:k+1], cur[:k+1])
	}
	return cur
}

// Forecast projects steps values past the end of the fitted series, on the
// original (undifferenced) scale. Future shocks are taken as zero.
func (f *Fitted) Forecast(steps int) ([]float64, error) {
	if steps <= 0 {
		return []float64{}, nil
	}

	n := len(f.w)
	w := append(append(make([]float64, 0, n+steps), f.w...), make([]float64, steps)...)
	e := append(append(make([]float64, 0, n+steps), f.resid...), make([]float64, steps)...)

	for t := n; t < n+steps; t++ {
		var v float64
		for i, phi := range f.AR {
			if k := t - i - 1; k >= 0 {
				v += phi * w[k]
			}
		}
		for j, theta := range f.MA {
			if k := t - j - 1; k >= 0 {
				v += theta * e[k]
			}
		}
		w[t] = v
	}

	out := Integrate(w[n:], f.levels)
	if !finite(out) {
		return nil, fmt.Errorf("%w: forecast is not finite", ErrFit)
	}
	return out, nil
}

// Difference applies d rounds of first differencing. levels holds the last
// value of every intermediate series, outermost first, for Integrate.
func Difference(series []float64, d int) (diffed []float64, levels []float64) {
	cur := append([]float64(nil), series...)
	levels = make([]float64, 0, d)
	for i := 0; i < d; i++ {
		levels = append(levels, cur[len(cur)-1])
		next := make([]float64, len(cur)-1)
		for t := 1; t < len(cur); t++ {
			next[t-1] = cur[t] - cur[t-1]
		}
		cur = next
	}
	return cur, levels
}

// Integrate undoes Difference for values that continue the differenced series.
func Integrate(values []float64, levels []float64) []float64 {
	out := append([]float64(nil), values...)
	for i := len(levels) - 1; i >= 0; i-- {
		last := levels[i]
		for t := range out {
			last += out[t]
			out[t] = last
		}
	}
	return out
}

func residuals(w, ar, ma []float64) []float64 {
	e := make([]float64, len(w))
	for t := range w {
		pred := 0.0
		for i, phi := range ar {
			if k := t - i - 1; k >= 0 {
				pred += phi * w[k]
			}
		}
		for j, theta := range ma {
			if k := t - j - 1; k >= 0 {
				pred += theta * e[k]
			}
		}
		e[t] = w[t] - pred
	}
	return e
}

func meanSquare(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	return floats.Dot(v, v) / float64(len(v))
}

func finite(v []float64) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
