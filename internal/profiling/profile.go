// Package profiling computes descriptive profiles for tested columns. The
// profile rides along with run summaries so reports can show what the column
// looked like next to how many rows were flagged.
package profiling

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Profile summarizes one numeric column
type Profile struct {
	SampleSize int     `json:"sample_size"`
	Mean       float64 `json:"mean"`
	StdDev     float64 `json:"std_dev"`
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
	Median     float64 `json:"median"`
	Q1         float64 `json:"q1"`
	Q3         float64 `json:"q3"`
	Skewness   float64 `json:"skewness"`
	Kurtosis   float64 `json:"kurtosis"` // excess kurtosis, 0 for a normal

	// Jarque-Bera normality check. Z-Score detection degrades under skew,
	// so reports surface this next to zscore results.
	NormalityP   float64 `json:"normality_p"`
	LikelyNormal bool    `json:"likely_normal"`
}

// Analyze profiles the given values, skipping NaN entries
func Analyze(values []float64) (Profile, error) {
	data := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			data = append(data, v)
		}
	}

	p := Profile{SampleSize: len(data)}
	if len(data) == 0 {
		return p, nil
	}

	var err error
	if p.Mean, err = stats.Mean(data); err != nil {
		return p, err
	}
	if p.StdDev, err = stats.StandardDeviation(data); err != nil {
		return p, err
	}
	if p.Min, err = stats.Min(data); err != nil {
		return p, err
	}
	if p.Max, err = stats.Max(data); err != nil {
		return p, err
	}
	if p.Median, err = stats.Median(data); err != nil {
		return p, err
	}
	if quartiles, qerr := stats.Quartile(data); qerr == nil {
		p.Q1 = quartiles.Q1
		p.Q3 = quartiles.Q3
	}

	if p.StdDev > 0 && len(data) > 3 {
		p.Skewness = stat.Skew(data, nil)
		p.Kurtosis = stat.ExKurtosis(data, nil)
		p.NormalityP = jarqueBeraP(len(data), p.Skewness, p.Kurtosis)
		p.LikelyNormal = p.NormalityP > 0.05
	}
	return p, nil
}

// jarqueBeraP returns the p-value of the Jarque-Bera statistic under its
// asymptotic chi-squared(2) distribution.
func jarqueBeraP(n int, skewness, kurtosis float64) float64 {
	jb := float64(n) / 6 * (skewness*skewness + kurtosis*kurtosis/4)
	chi2 := distuv.ChiSquared{K: 2}
	return 1 - chi2.CDF(jb)
}
