package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/sonido-emd/algorithms/emd"
	"github.com/RyanBlaney/sonido-emd/logging"
)

func TestReadSignal(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantTime   []float64
		wantSignal []float64
	}{
		{"values", "1\n2.5\n-3\n", nil, []float64{1, 2.5, -3}},
		{"values with header", "value\n1\n2\n", nil, []float64{1, 2}},
		{"time and values", "0,1\n0.5, 2\n1,3\n", []float64{0, 0.5, 1}, []float64{1, 2, 3}},
		{"header and comments", "# exported\ntime,value\n0,4\n1,5\n", []float64{0, 1}, []float64{4, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			time, signal, err := readSignal(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.wantTime, time)
			assert.Equal(t, tt.wantSignal, signal)
		})
	}
}

func TestReadSignalErrors(t *testing.T) {
	for _, input := range []string{"", "1,2,3\n", "1\nx\n", "0,1\n2\n"} {
		_, _, err := readSignal(strings.NewReader(input))
		assert.Error(t, err, "input %q", input)
	}
}

func sineCSV(n int) string {
	var b strings.Builder
	b.WriteString("time,value\n")
	for i := 0; i < n; i++ {
		x := float64(i) / float64(n)
		fmt.Fprintf(&b, "%g,%g\n", x, math.Sin(2*math.Pi*4*x))
	}
	return b.String()
}

func TestRunWritesJSON(t *testing.T) {
	var out, logs bytes.Buffer
	logger := logging.NewWriterLogger(&logs, &logs)

	err := run([]string{"-spline", "cubic", "-debug"}, strings.NewReader(sineCSV(400)), &out, logger)
	require.NoError(t, err)

	var decoded struct {
		Config      emd.Config        `json:"config"`
		Result      emd.Result        `json:"result"`
		Diagnostics []emd.Diagnostics `json:"diagnostics"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))

	assert.Equal(t, "cubic", decoded.Config.SplineKind)
	require.NotEmpty(t, decoded.Result.IMFs)
	assert.Len(t, decoded.Result.IMFs[0].Values, 400)
	assert.Len(t, decoded.Diagnostics, len(decoded.Result.IMFs))
	assert.Contains(t, logs.String(), "IMF extracted")
	assert.Contains(t, logs.String(), "Decomposition complete")
}

func TestRunFixedIterations(t *testing.T) {
	var out bytes.Buffer
	err := run([]string{"-fixe", "2", "-max-imf", "1"}, strings.NewReader(sineCSV(200)), &out, &logging.NoOpLogger{})
	require.NoError(t, err)
	assert.Contains(t, out.String(), `"kind": "fixed_iterations"`)
}

func TestRunThresholdFlags(t *testing.T) {
	var out bytes.Buffer
	args := []string{
		"-range-threshold", "0.5",
		"-total-power-threshold", "0.25",
		"-energy-floor", "1e-8",
		"-scale-factor", "50",
		"-max-imf", "1",
	}
	err := run(args, strings.NewReader(sineCSV(200)), &out, &logging.NoOpLogger{})
	require.NoError(t, err)

	var decoded struct {
		Config emd.Config `json:"config"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, 0.5, decoded.Config.RangeThreshold)
	assert.Equal(t, 0.25, decoded.Config.TotalPowerThreshold)
	assert.Equal(t, 1e-8, decoded.Config.EnergyFloor)
	assert.Equal(t, 50.0, decoded.Config.ScaleFactor)

	err = run([]string{"-scale-factor", "0"}, strings.NewReader(sineCSV(200)), &bytes.Buffer{}, &logging.NoOpLogger{})
	assert.ErrorIs(t, err, emd.ErrInvalidInput)
}

func TestRunErrors(t *testing.T) {
	logger := &logging.NoOpLogger{}

	err := run([]string{"-fixe", "2", "-fixe-h", "2"}, strings.NewReader(sineCSV(100)), &bytes.Buffer{}, logger)
	assert.Error(t, err)

	err = run([]string{"-spline", "bezier"}, strings.NewReader(sineCSV(100)), &bytes.Buffer{}, logger)
	assert.ErrorIs(t, err, emd.ErrUnsupportedMethod)

	err = run(nil, strings.NewReader("1\n2\n"), &bytes.Buffer{}, logger)
	assert.ErrorIs(t, err, emd.ErrInvalidInput)

	err = run([]string{"/does/not/exist.csv"}, strings.NewReader(""), &bytes.Buffer{}, logger)
	assert.Error(t, err)
}
