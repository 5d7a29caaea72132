package fit

// CostFunc scores one candidate parameter pair against a fixed sample.
type CostFunc func(p Params) float64

// RSSCost returns the residual-sum-of-squares cost over the sample (x, y).
// The returned function closes over the slices without copying them.
func RSSCost(x, y []float64) CostFunc {
	return func(p Params) float64 {
		return RSS(x, y, p)
	}
}

// RSS computes Σ(y_i − (intercept + slope·x_i))² over the sample.
func RSS(x, y []float64, p Params) float64 {
	var sum float64
	for i := range x {
		r := y[i] - p.Predict(x[i])
		sum += r * r
	}
	return sum
}

// Residuals returns observed minus predicted for every sample point.
func Residuals(x, y []float64, p Params) []float64 {
	res := make([]float64, len(x))
	for i := range x {
		res[i] = y[i] - p.Predict(x[i])
	}
	return res
}
