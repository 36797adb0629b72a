package supply

import "github.com/plus3/tenten/puzzle/analysis"

// Params holds every tuning constant of the supplier.
type Params struct {
	BatchSize  int                 `yaml:"batch_size"`
	Thresholds analysis.Thresholds `yaml:"thresholds"`
	// WeightedRetries and HybridRetries multiply the batch size to bound
	// duplicate-rejecting draws.
	WeightedRetries  int            `yaml:"weighted_retries"`
	HybridRetries    int            `yaml:"hybrid_retries"`
	PostRevivePasses int            `yaml:"post_revive_passes"`
	Hybrid           HybridParams   `yaml:"hybrid"`
	Adaptive         AdaptiveParams `yaml:"adaptive"`
}

// HybridParams normalises the three hybrid bias scores and picks a preset.
// A preset is chosen when score*Scale exceeds Cutoff, checked in the order
// clearing, fragmentation, strategic.
type HybridParams struct {
	ClearingMax        float64 `yaml:"clearing_max"`
	FragmentationMax   float64 `yaml:"fragmentation_max"`
	StrategicMax       float64 `yaml:"strategic_max"`
	ClearingScale      float64 `yaml:"clearing_scale"`
	ClearingCutoff     float64 `yaml:"clearing_cutoff"`
	FragmentationScale float64 `yaml:"fragmentation_scale"`
	FragmentationCut   float64 `yaml:"fragmentation_cutoff"`
	StrategicScale     float64 `yaml:"strategic_scale"`
	StrategicCutoff    float64 `yaml:"strategic_cutoff"`
}

// AdaptiveParams are the utility bias strengths per difficulty band.
type AdaptiveParams struct {
	LineMakerBias float64 `yaml:"line_maker_bias"`
	ModerateBias  float64 `yaml:"moderate_bias"`
	DifficultBias float64 `yaml:"difficult_bias"`
	CriticalBias  float64 `yaml:"critical_bias"`
}

// DefaultParams returns the stock tuning.
func DefaultParams() Params {
	return Params{
		BatchSize:        3,
		Thresholds:       analysis.DefaultThresholds(),
		WeightedRetries:  10,
		HybridRetries:    15,
		PostRevivePasses: 50,
		Hybrid: HybridParams{
			ClearingMax:        20,
			FragmentationMax:   100,
			StrategicMax:       15,
			ClearingScale:      0.5,
			ClearingCutoff:     0.5,
			FragmentationScale: 0.3,
			FragmentationCut:   0.5,
			StrategicScale:     0.2,
			StrategicCutoff:    0.3,
		},
		Adaptive: AdaptiveParams{
			LineMakerBias: 0.20,
			ModerateBias:  0.30,
			DifficultBias: 0.50,
			CriticalBias:  0.70,
		},
	}
}
