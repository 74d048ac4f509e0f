package scoring

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"
)

// TrainOptions controls the hold-out split and the optimizer.
type TrainOptions struct {
	TestSize     float64 // fraction held out for evaluation, default 0.25
	Seed         uint64  // split seed, default 42
	C            float64 // inverse L2 regularization strength, default 1.0
	LearningRate float64 // default 0.5
	Iterations   int     // full-batch gradient steps, default 3000
}

// DefaultTrainOptions returns the defaults listed on TrainOptions.
func DefaultTrainOptions() TrainOptions {
	return TrainOptions{
		TestSize:     0.25,
		Seed:         42,
		C:            1.0,
		LearningRate: 0.5,
		Iterations:   3000,
	}
}

func (o *TrainOptions) applyDefaults() {
	d := DefaultTrainOptions()
	if o.TestSize <= 0 || o.TestSize >= 1 {
		o.TestSize = d.TestSize
	}
	if o.Seed == 0 {
		o.Seed = d.Seed
	}
	if o.C <= 0 {
		o.C = d.C
	}
	if o.LearningRate <= 0 {
		o.LearningRate = d.LearningRate
	}
	if o.Iterations <= 0 {
		o.Iterations = d.Iterations
	}
}

// ClassReport holds per-class evaluation figures.
type ClassReport struct {
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
	Support   int     `json:"support"`
}

// Metrics is the hold-out evaluation of a trained model.
type Metrics struct {
	Accuracy  float64        `json:"accuracy"`
	TrainSize int            `json:"train_size"`
	TestSize  int            `json:"test_size"`
	PerClass  [2]ClassReport `json:"per_class"`
}

// Train fits a standardized, L2-regularized logistic regression on a stratified split of samples
// and evaluates it on the held-out part. Both classes must be present with at least two samples each.
func Train(samples []Sample, opts TrainOptions) (*LogisticModel, *Metrics, error) {
	opts.applyDefaults()

	var byClass [2][]int
	for i, s := range samples {
		if s.Label != 0 && s.Label != 1 {
			return nil, nil, fmt.Errorf("sample %d: label must be 0 or 1, got %d", i, s.Label)
		}
		byClass[s.Label] = append(byClass[s.Label], i)
	}
	if len(byClass[0]) < 2 || len(byClass[1]) < 2 {
		return nil, nil, fmt.Errorf("need at least two samples of each class, got %d negative and %d positive",
			len(byClass[0]), len(byClass[1]))
	}

	trainIdx, testIdx := stratifiedSplit(byClass, opts.TestSize, opts.Seed)
	trainX, trainY := matrix(samples, trainIdx)
	testX, testY := matrix(samples, testIdx)

	mean, scale := fitScaler(trainX)
	standardize(trainX, mean, scale)

	coef, intercept := gradientDescent(trainX, trainY, opts)

	model := &LogisticModel{
		Features:  append([]string{}, FeatureNames...),
		Mean:      mean,
		Scale:     scale,
		Coef:      coef,
		Intercept: intercept,
		TrainedAt: time.Now().UTC(),
	}
	metrics := evaluate(model, testX, testY)
	metrics.TrainSize = len(trainIdx)
	model.Metrics = metrics
	return model, metrics, nil
}

// stratifiedSplit shuffles each class with a seeded source and holds out a TestSize share of it,
// keeping at least one sample of every class on each side.
func stratifiedSplit(byClass [2][]int, testSize float64, seed uint64) (train, test []int) {
	rng := rand.New(rand.NewPCG(seed, seed))
	for _, idx := range byClass {
		shuffled := append([]int{}, idx...)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		k := int(math.Round(float64(len(shuffled)) * testSize))
		k = max(1, min(k, len(shuffled)-1))
		test = append(test, shuffled[:k]...)
		train = append(train, shuffled[k:]...)
	}
	return train, test
}

func matrix(samples []Sample, idx []int) ([][]float64, []float64) {
	x := make([][]float64, len(idx))
	y := make([]float64, len(idx))
	for i, j := range idx {
		x[i] = samples[j].Features.Vector()
		y[i] = float64(samples[j].Label)
	}
	return x, y
}

// fitScaler returns per-column mean and population standard deviation; constant columns get scale 1.
func fitScaler(x [][]float64) (mean, scale []float64) {
	n := len(FeatureNames)
	mean = make([]float64, n)
	scale = make([]float64, n)
	for _, row := range x {
		for j, v := range row {
			mean[j] += v
		}
	}
	for j := range mean {
		mean[j] /= float64(len(x))
	}
	for _, row := range x {
		for j, v := range row {
			d := v - mean[j]
			scale[j] += d * d
		}
	}
	for j := range scale {
		scale[j] = math.Sqrt(scale[j] / float64(len(x)))
		if scale[j] == 0 {
			scale[j] = 1
		}
	}
	return mean, scale
}

func standardize(x [][]float64, mean, scale []float64) {
	for _, row := range x {
		for j := range row {
			row[j] = (row[j] - mean[j]) / scale[j]
		}
	}
}

// gradientDescent minimizes mean log-loss plus ||w||²/(2·C·n); the intercept is not penalized.
func gradientDescent(x [][]float64, y []float64, opts TrainOptions) ([]float64, float64) {
	n := float64(len(x))
	w := make([]float64, len(FeatureNames))
	var b float64
	grad := make([]float64, len(w))
	for iter := 0; iter < opts.Iterations; iter++ {
		clear(grad)
		var gb float64
		for i, row := range x {
			z := b
			for j, v := range row {
				z += w[j] * v
			}
			diff := sigmoid(z) - y[i]
			for j, v := range row {
				grad[j] += diff * v
			}
			gb += diff
		}
		for j := range w {
			g := grad[j]/n + w[j]/(opts.C*n)
			w[j] -= opts.LearningRate * g
		}
		b -= opts.LearningRate * gb / n
	}
	return w, b
}

func evaluate(m *LogisticModel, x [][]float64, y []float64) *Metrics {
	var tp, fp, tn, fn int
	for i, row := range x {
		pred := m.PredictProba(row) >= 0.5
		actual := y[i] == 1
		switch {
		case pred && actual:
			tp++
		case pred && !actual:
			fp++
		case !pred && !actual:
			tn++
		default:
			fn++
		}
	}
	metrics := &Metrics{TestSize: len(x)}
	if len(x) > 0 {
		metrics.Accuracy = float64(tp+tn) / float64(len(x))
	}
	metrics.PerClass[1] = classReport(tp, fp, fn)
	metrics.PerClass[0] = classReport(tn, fn, fp)
	return metrics
}

func classReport(tp, fp, fn int) ClassReport {
	r := ClassReport{Support: tp + fn}
	if tp+fp > 0 {
		r.Precision = float64(tp) / float64(tp+fp)
	}
	if tp+fn > 0 {
		r.Recall = float64(tp) / float64(tp+fn)
	}
	if r.Precision+r.Recall > 0 {
		r.F1 = 2 * r.Precision * r.Recall / (r.Precision + r.Recall)
	}
	return r
}
