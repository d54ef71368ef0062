// SPDX-License-Identifier: Apache-2.0

package analysis

import (
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/vigcrack/vigcrack/internal/cipher"
)

// ColumnReport describes how well one recovered column fits the reference.
type ColumnReport struct {
	Index       int     `json:"index"`
	Shift       int     `json:"shift"`
	Letter      string  `json:"letter"`
	Samples     int     `json:"samples"`
	Correlation float64 `json:"correlation"`
	ChiSquared  float64 `json:"chi_squared"`
	PValue      float64 `json:"p_value"`
	// Degenerate marks a column with no letters; its shift is arbitrary.
	Degenerate bool `json:"degenerate"`
}

// DescribeColumn decodes the column counts with shift and scores the result
// against reference with a chi-squared goodness-of-fit test.
func DescribeColumn(index int, observed FrequencyVector, shift cipher.Shift, correlation float64, reference Distribution) ColumnReport {
	report := ColumnReport{
		Index:       index,
		Shift:       int(shift),
		Letter:      string(shift.Letter()),
		Samples:     int(observed.Total()),
		Correlation: correlation,
	}
	if report.Samples == 0 {
		report.Degenerate = true
		return report
	}

	n := observed.Total()
	mass := reference.Sum()
	var chi float64
	for plain := 0; plain < cipher.Size; plain++ {
		expected := n * reference[plain] / mass
		got := observed[cipher.Shift(plain).Add(shift)]
		chi += (got - expected) * (got - expected) / expected
	}
	report.ChiSquared = chi
	report.PValue = 1 - distuv.ChiSquared{K: cipher.Size - 1}.CDF(chi)
	return report
}
