package embedding

// Pooling strategies for the model output.
const (
	// PoolingMean averages the token embeddings of last_hidden_state ([1, seq, dims]) over the
	// attention mask, as sentence-transformers does.
	PoolingMean = "mean"
	// PoolingNone reads an already pooled [1, dims] output.
	PoolingNone = "none"
)

const minMaskSum = 1e-9

// MeanPool averages the rows of hidden (seq rows of dims values, row-major) whose attention
// mask is 1. The result is a new slice of length dims.
func MeanPool(hidden []float32, mask []int64, dims int) []float32 {
	out := make([]float32, dims)
	sums := make([]float64, dims)
	var count float64
	for t, m := range mask {
		if m == 0 {
			continue
		}
		row := hidden[t*dims : (t+1)*dims]
		for j, v := range row {
			sums[j] += float64(v) * float64(m)
		}
		count += float64(m)
	}
	count = max(count, minMaskSum)
	for j, s := range sums {
		out[j] = float32(s / count)
	}
	return out
}
