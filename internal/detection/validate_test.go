package detection

import (
	"math"
	"testing"
)

func TestValidateSpacing(t *testing.T) {
	tests := []struct {
		name        string
		centers     []int
		maxCV       float64
		wantRegular bool
		wantMean    float64
	}{
		{"uniform grid", []int{100, 200, 300, 400}, 0.25, true, 100},
		{"mild jitter", []int{100, 198, 304, 401}, 0.25, true, 100.33},
		{"one missing row", []int{100, 200, 400, 500}, 0.25, false, 133.33},
		{"too few rows to judge", []int{100, 200}, 0.25, true, 0},
		{"empty", nil, 0.25, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := ValidateSpacing(tt.centers, tt.maxCV)
			if report.Regular != tt.wantRegular {
				t.Errorf("Regular: got %v, want %v (report %+v)", report.Regular, tt.wantRegular, report)
			}
			if report.Rows != len(tt.centers) {
				t.Errorf("Rows: got %d, want %d", report.Rows, len(tt.centers))
			}
			if tt.wantMean > 0 && math.Abs(report.Mean-tt.wantMean) > 0.1 {
				t.Errorf("Mean: got %.2f, want %.2f", report.Mean, tt.wantMean)
			}
		})
	}
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	bad := []func(*Config){
		func(c *Config) { c.MergeThreshold = -1 },
		func(c *Config) { c.WallHeight = 0 },
		func(c *Config) { c.WidthTolerance = -2 },
		func(c *Config) { c.SeedFraction = 1.0 },
		func(c *Config) { c.SeedFraction = -0.1 },
	}
	for i, mutate := range bad {
		cfg := DefaultConfig()
		mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("case %d: invalid config accepted", i)
		}
	}
}
