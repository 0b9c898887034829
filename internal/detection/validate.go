package detection

import (
	"gonum.org/v1/gonum/stat"
)

// SpacingReport summarizes the vertical spacing of detected row centers.
// It exists to validate the calibrated template constants against what was
// actually found on the page: a grid with wildly irregular spacing usually
// means the seed column landed outside the table or the thresholds do not
// match the rendering resolution.
type SpacingReport struct {
	Rows    int
	Mean    float64
	StdDev  float64
	Regular bool
}

// ValidateSpacing computes mean and standard deviation of the gaps between
// consecutive row centers. The grid counts as regular when the coefficient
// of variation (stddev / mean) stays at or below maxCV; 0.25 is a reasonable
// bound for the switchboard template.
//
// Fewer than three centers give too few gaps to judge and are reported as
// regular.
func ValidateSpacing(centers []int, maxCV float64) SpacingReport {
	report := SpacingReport{Rows: len(centers), Regular: true}
	if len(centers) < 3 {
		return report
	}

	gaps := make([]float64, len(centers)-1)
	for i := 1; i < len(centers); i++ {
		gaps[i-1] = float64(centers[i] - centers[i-1])
	}

	report.Mean = stat.Mean(gaps, nil)
	report.StdDev = stat.StdDev(gaps, nil)
	if report.Mean > 0 {
		report.Regular = report.StdDev/report.Mean <= maxCV
	}
	return report
}
