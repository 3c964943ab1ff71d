package emd

import (
	"bytes"
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/RyanBlaney/sonido-emd/algorithms/interpolation"
	"github.com/RyanBlaney/sonido-emd/logging"
)

func uniformGrid(n int, dt float64) []float64 {
	t := make([]float64, n)
	for i := range t {
		t[i] = float64(i) * dt
	}
	return t
}

func tone(t []float64, freq, amp float64) []float64 {
	out := make([]float64, len(t))
	for i, v := range t {
		out[i] = amp * math.Sin(2*math.Pi*freq*v)
	}
	return out
}

func twoTone(n int) (t, signal, high []float64) {
	t = uniformGrid(n, 1.0/float64(n))
	low := tone(t, 2, 1)
	high = tone(t, 50, 1)
	signal = make([]float64, n)
	floats.AddTo(signal, low, high)
	return t, signal, high
}

func requireBalanced(t *testing.T, result *Result) {
	t.Helper()
	for _, imf := range result.IMFs {
		diff := imf.Extrema - imf.ZeroCrossings
		assert.True(t, diff >= -1 && diff <= 1,
			"imf %d: %d extrema, %d zero-crossings", imf.Index, imf.Extrema, imf.ZeroCrossings)
	}
}

func quietSifter(t *testing.T, cfg Config) *Sifter {
	t.Helper()
	s, err := NewSifter(cfg, WithLogger(&logging.NoOpLogger{}))
	require.NoError(t, err)
	return s
}

func TestDecomposeConstantSignal(t *testing.T) {
	signal := make([]float64, 100)
	for i := range signal {
		signal[i] = 5.0
	}

	result, err := quietSifter(t, DefaultConfig()).Decompose(signal, nil, -1)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Len())
	assert.Equal(t, EndNoOscillation, result.EndReason)

	residue, err := result.Residue(signal)
	require.NoError(t, err)
	assert.Equal(t, signal, residue)
}

func TestDecomposePureTone(t *testing.T) {
	grid := uniformGrid(1000, 0.001)
	signal := tone(grid, 5, 1)

	result, err := quietSifter(t, DefaultConfig()).Decompose(signal, grid, -1)
	require.NoError(t, err)
	require.Equal(t, 1, result.Len())

	first := result.IMFs[0]
	assert.Greater(t, stat.Correlation(first.Values, signal, nil), 0.99)
	assert.InDelta(t, 1.0, floats.Norm(first.Values, 2)/floats.Norm(signal, 2), 0.05)
	assert.InDelta(t, 1.0, floats.Max(first.Values)/floats.Max(signal), 0.05)
	assert.InDelta(t, 1.0, floats.Min(first.Values)/floats.Min(signal), 0.05)
	requireBalanced(t, result)
}

func TestDecomposeSeparatesTones(t *testing.T) {
	grid, signal, high := twoTone(2000)

	result, err := quietSifter(t, DefaultConfig()).Decompose(signal, grid, -1)
	require.NoError(t, err)
	require.GreaterOrEqual(t, result.Len(), 2)

	first := result.IMFs[0]
	interior := first.Values[200:1800]
	assert.Greater(t, stat.Correlation(interior, high[200:1800], nil), 0.9)
	requireBalanced(t, result)

	diags, err := result.Diagnostics()
	require.NoError(t, err)
	require.Len(t, diags, result.Len())
	assert.Greater(t, diags[0].MeanFrequency, diags[1].MeanFrequency)
}

func TestDecomposeReconstructs(t *testing.T) {
	grid := uniformGrid(600, 0.01)
	signal := make([]float64, len(grid))
	for i, v := range grid {
		signal[i] = math.Sin(2*v*(1+0.2*v)) + 0.5*math.Sin(13*v) + 0.1*v
	}

	for _, method := range interpolation.Methods {
		t.Run(string(method), func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.SplineKind = string(method)
			cfg.MaxIteration = 200

			result, err := quietSifter(t, cfg).Decompose(signal, grid, -1)
			require.NoError(t, err)

			residue, err := result.Residue(signal)
			require.NoError(t, err)

			rebuilt := result.Reconstruct()
			floats.Add(rebuilt, residue)
			for i := range signal {
				assert.InDelta(t, signal[i], rebuilt[i], 1e-9)
			}
			for i, imf := range result.IMFs {
				assert.Equal(t, i, imf.Index)
				assert.Len(t, imf.Values, len(signal))
			}
		})
	}
}

func TestDecomposeBalancedIMFsPerMethod(t *testing.T) {
	grid, signal, _ := twoTone(2000)

	for _, method := range interpolation.Methods {
		t.Run(string(method), func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.SplineKind = string(method)

			result, err := quietSifter(t, cfg).Decompose(signal, grid, -1)
			require.NoError(t, err)
			require.NotZero(t, result.Len())
			requireBalanced(t, result)
		})
	}
}

func TestDecomposeDefaultTimeAxis(t *testing.T) {
	_, signal, _ := twoTone(500)

	result, err := quietSifter(t, DefaultConfig()).Decompose(signal, nil, 1)
	require.NoError(t, err)
	assert.Equal(t, 0.0, result.Time[0])
	assert.Equal(t, 499.0, result.Time[499])
}

func TestDecomposeIMFBudget(t *testing.T) {
	grid, signal, _ := twoTone(2000)

	result, err := quietSifter(t, DefaultConfig()).Decompose(signal, grid, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Len())
	assert.Equal(t, EndIMFBudget, result.EndReason)
}

func TestDecomposeSinglePassKeepsSignal(t *testing.T) {
	grid, signal, _ := twoTone(400)
	cfg := DefaultConfig()
	cfg.MaxIteration = 1

	result, err := quietSifter(t, cfg).Decompose(signal, grid, -1)
	require.NoError(t, err)
	require.Equal(t, 1, result.Len())
	assert.Equal(t, 1, result.IMFs[0].Iterations)
	assert.Equal(t, EndRange, result.EndReason)
	for i := range signal {
		assert.InDelta(t, signal[i], result.IMFs[0].Values[i], 1e-9)
	}
}

func TestDecomposeFixedIterations(t *testing.T) {
	grid, signal, _ := twoTone(1000)
	cfg := DefaultConfig()
	cfg.Stopping = FixedIterations(3)

	result, err := quietSifter(t, cfg).Decompose(signal, grid, 2)
	require.NoError(t, err)
	require.NotZero(t, result.Len())
	assert.Equal(t, 4, result.IMFs[0].Iterations)
}

func TestDecomposeFixedStableStreak(t *testing.T) {
	grid, signal, _ := twoTone(1000)
	cfg := DefaultConfig()
	cfg.Stopping = FixedStableStreak(2)

	result, err := quietSifter(t, cfg).Decompose(signal, grid, 2)
	require.NoError(t, err)
	require.NotZero(t, result.Len())
	assert.GreaterOrEqual(t, result.IMFs[0].Iterations, 3)
}

func TestDecomposeErrors(t *testing.T) {
	s := quietSifter(t, DefaultConfig())

	tests := []struct {
		name   string
		signal []float64
		time   []float64
		want   error
	}{
		{"length mismatch", []float64{1, 2, 3, 4, 5}, []float64{0, 1, 2}, ErrShapeMismatch},
		{"two samples", []float64{1, 2}, nil, ErrInvalidInput},
		{"empty", []float64{}, nil, ErrInvalidInput},
		{"time not increasing", []float64{1, 2, 1, 2}, []float64{0, 1, 1, 2}, ErrInvalidInput},
		{"nan sample", []float64{1, math.NaN(), 1, 2}, nil, ErrInvalidInput},
		{"infinite sample", []float64{1, math.Inf(1), 1, 2}, nil, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := s.Decompose(tt.signal, tt.time, -1)
			assert.Nil(t, result)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNewSifterValidatesConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"unknown spline", func(c *Config) { c.SplineKind = "bezier" }, ErrUnsupportedMethod},
		{"zero nbsym", func(c *Config) { c.NBSym = 0 }, ErrInvalidInput},
		{"zero iterations", func(c *Config) { c.MaxIteration = 0 }, ErrInvalidInput},
		{"zero scale factor", func(c *Config) { c.ScaleFactor = 0 }, ErrInvalidInput},
		{"negative threshold", func(c *Config) { c.StdThreshold = -1 }, ErrInvalidInput},
		{"fixed without count", func(c *Config) { c.Stopping = FixedIterations(0) }, ErrInvalidInput},
		{"unknown policy", func(c *Config) { c.Stopping = StoppingPolicy{Kind: "forever"} }, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			s, err := NewSifter(cfg)
			assert.Nil(t, s)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNewSifterAcceptsMixedCaseSpline(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SplineKind = "Cubic"
	cfg.Stopping = StoppingPolicy{}

	s, err := NewSifter(cfg)
	require.NoError(t, err)
	assert.Equal(t, StopCauchy, s.Config().Stopping.Kind)
}

func TestSifterLogsPerIMF(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWriterLogger(&buf, &buf)
	logger.SetLevel(logging.DebugLevel)

	s, err := NewSifter(DefaultConfig(), WithLogger(logger))
	require.NoError(t, err)

	grid, signal, _ := twoTone(1000)
	_, err = s.Decompose(signal, grid, 1)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "IMF extracted")
	assert.Contains(t, out, "component=emd_sifter")
	assert.Contains(t, out, "reason=imf_budget")
}

func TestSifterIsSafeForConcurrentUse(t *testing.T) {
	s := quietSifter(t, DefaultConfig())
	grid, signal, _ := twoTone(800)

	want, err := s.Decompose(signal, grid, -1)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]*Result, 4)
	errs := make([]error, 4)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = s.Decompose(signal, grid, -1)
		}(i)
	}
	wg.Wait()

	for i := range results {
		require.NoError(t, errs[i])
		assert.Equal(t, want, results[i])
	}
}

func ExampleDecompose() {
	signal := make([]float64, 64)
	for i := range signal {
		signal[i] = 5
	}

	result, err := Decompose(signal, nil, -1)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("imfs=%d reason=%s\n", result.Len(), result.EndReason)
	// Output: imfs=0 reason=no_oscillation
}

func BenchmarkDecompose(b *testing.B) {
	grid, signal, _ := twoTone(2000)
	s, err := NewSifter(DefaultConfig(), WithLogger(&logging.NoOpLogger{}))
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := s.Decompose(signal, grid, -1); err != nil {
			b.Fatal(err)
		}
	}
}
