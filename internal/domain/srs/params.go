package srs

// Params defines all configurable parameters for the SRS algorithm.
type Params struct {
	// Core limits
	MinEaseFactor float64 // Floor for the easiness factor
	MinQuality    int     // Lowest quality score; inputs below are clamped
	MaxQuality    int     // Highest quality score; inputs above are clamped
	PassQuality   int     // Lowest quality counted as a successful recall

	// Interval progression for the first successful repetitions, in days.
	FirstInterval  int // repetitions == 0
	SecondInterval int // repetitions == 1
}

// ParamsConfig allows overriding the default parameters when creating a new Params instance.
type ParamsConfig struct {
	MinEaseFactor  float64
	PassQuality    int
	FirstInterval  int
	SecondInterval int
}

// NewDefaultParams creates a new Params instance with the standard SM-2 values.
func NewDefaultParams() *Params {
	return &Params{
		MinEaseFactor:  1.3,
		MinQuality:     0,
		MaxQuality:     5,
		PassQuality:    3,
		FirstInterval:  1,
		SecondInterval: 3,
	}
}

// NewParams creates a new Params instance with custom configuration.
// Zero-valued fields keep their defaults.
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.MinEaseFactor > 0 {
		params.MinEaseFactor = config.MinEaseFactor
	}
	if config.PassQuality > 0 {
		params.PassQuality = config.PassQuality
	}
	if config.FirstInterval > 0 {
		params.FirstInterval = config.FirstInterval
	}
	if config.SecondInterval > 0 {
		params.SecondInterval = config.SecondInterval
	}

	return params
}
