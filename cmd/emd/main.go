// Command emd decomposes a signal read from CSV and prints the IMFs as JSON.
//
// Input has one column (value) or two (time,value); a non-numeric first
// row is taken as a header.
//
//	emd [flags] [signal.csv]
package main

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/RyanBlaney/sonido-emd/algorithms/emd"
	"github.com/RyanBlaney/sonido-emd/logging"
)

type output struct {
	Config      emd.Config        `json:"config"`
	Result      *emd.Result       `json:"result"`
	Diagnostics []emd.Diagnostics `json:"diagnostics"`
}

func main() {
	logger := logging.NewDefaultLogger()
	if err := run(os.Args[1:], os.Stdin, os.Stdout, logger); err != nil {
		logger.Fatal(err, "emd failed")
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer, logger logging.Logger) error {
	cfg := emd.DefaultConfig()

	fs := flag.NewFlagSet("emd", flag.ContinueOnError)
	spline := fs.String("spline", cfg.SplineKind, "Envelope spline: akima, cubic, linear, slinear, quadratic")
	nbsym := fs.Int("nbsym", cfg.NBSym, "Extrema mirrored past each edge")
	maxIMF := fs.Int("max-imf", -1, "Maximum number of IMFs (non-positive means unbounded)")
	fixe := fs.Int("fixe", 0, "Stop sifting after this many passes (0 disables)")
	fixeH := fs.Int("fixe-h", 0, "Stop sifting after this many consecutive balanced passes (0 disables)")
	stdThreshold := fs.Float64("std-threshold", cfg.StdThreshold, "Normalized difference threshold of the Cauchy test")
	svarThreshold := fs.Float64("svar-threshold", cfg.ScaledVarThreshold, "Scaled variance threshold of the Cauchy test")
	maxIteration := fs.Int("max-iteration", cfg.MaxIteration, "Sifting passes allowed per IMF")
	energyFloor := fs.Float64("energy-floor", cfg.EnergyFloor, "Candidates with less energy are accepted as converged")
	rangeThreshold := fs.Float64("range-threshold", cfg.RangeThreshold, "Stop when the residue range falls below this")
	totalPowerThreshold := fs.Float64("total-power-threshold", cfg.TotalPowerThreshold, "Stop when the residue absolute sum falls below this")
	scaleFactor := fs.Float64("scale-factor", cfg.ScaleFactor, "Signal is divided by (max-min)/scale-factor before sifting")
	debug := fs.Bool("debug", false, "Log every extracted IMF")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *fixe > 0 && *fixeH > 0 {
		return fmt.Errorf("-fixe and -fixe-h are mutually exclusive")
	}

	cfg.SplineKind = *spline
	cfg.NBSym = *nbsym
	cfg.StdThreshold = *stdThreshold
	cfg.ScaledVarThreshold = *svarThreshold
	cfg.MaxIteration = *maxIteration
	cfg.EnergyFloor = *energyFloor
	cfg.RangeThreshold = *rangeThreshold
	cfg.TotalPowerThreshold = *totalPowerThreshold
	cfg.ScaleFactor = *scaleFactor
	switch {
	case *fixe > 0:
		cfg.Stopping = emd.FixedIterations(*fixe)
	case *fixeH > 0:
		cfg.Stopping = emd.FixedStableStreak(*fixeH)
	}

	if *debug {
		logger.SetLevel(logging.DebugLevel)
	}

	in := stdin
	source := "stdin"
	if fs.NArg() > 0 {
		source = fs.Arg(0)
		f, err := os.Open(source)
		if err != nil {
			return fmt.Errorf("open signal: %w", err)
		}
		defer f.Close()
		in = f
	}

	t, signal, err := readSignal(in)
	if err != nil {
		return fmt.Errorf("read %s: %w", source, err)
	}

	sifter, err := emd.NewSifter(cfg, emd.WithLogger(logger))
	if err != nil {
		return err
	}

	result, err := sifter.Decompose(signal, t, *maxIMF)
	if err != nil {
		return err
	}

	diags, err := result.Diagnostics()
	if err != nil {
		return err
	}

	logger.Info("Decomposition complete", logging.Fields{
		"source":  source,
		"samples": len(signal),
		"imfs":    result.Len(),
		"reason":  string(result.EndReason),
	})

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(output{Config: cfg, Result: result, Diagnostics: diags})
}

// readSignal parses value or time,value rows. A nil time axis is returned
// for single-column input.
func readSignal(r io.Reader) ([]float64, []float64, error) {
	reader := csv.NewReader(r)
	reader.Comment = '#'
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, errors.New("no rows")
	}

	columns := len(records[0])
	if columns < 1 || columns > 2 {
		return nil, nil, fmt.Errorf("expected 1 or 2 columns, got %d", columns)
	}

	if _, err := strconv.ParseFloat(strings.TrimSpace(records[0][columns-1]), 64); err != nil {
		records = records[1:]
	}

	var t []float64
	signal := make([]float64, 0, len(records))
	for i, rec := range records {
		vals := make([]float64, len(rec))
		for j, field := range rec {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, nil, fmt.Errorf("row %d column %d: %w", i+1, j+1, err)
			}
			vals[j] = v
		}

		if columns == 2 {
			t = append(t, vals[0])
		}
		signal = append(signal, vals[columns-1])
	}

	return t, signal, nil
}
