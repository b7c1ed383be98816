package forecast

import "fmt"

const (
	DefaultWindow = 7
	DefaultAlpha  = 0.3
	DefaultZScore = 1.96
)

// Options configures the built-in forecast methods
type Options struct {
	// Window is the trailing window of the moving average
	Window int `json:"window" mapstructure:"window"`

	// Alpha is the exponential smoothing factor in (0, 1]
	Alpha float64 `json:"alpha" mapstructure:"alpha"`

	// ZScore scales the standard deviation into the half width of the uncertainty band
	ZScore float64 `json:"z_score" mapstructure:"z_score"`
}

// NewDefaultOptions returns a window of 7, alpha of 0.3 and a 95% band
func NewDefaultOptions() *Options {
	return &Options{
		Window: DefaultWindow,
		Alpha:  DefaultAlpha,
		ZScore: DefaultZScore,
	}
}

func (o *Options) Validate() error {
	if o.Window < 1 {
		return fmt.Errorf("window of %d, %w", o.Window, ErrInvalidOptions)
	}
	if o.Alpha <= 0 || o.Alpha > 1 {
		return fmt.Errorf("alpha of %f, %w", o.Alpha, ErrInvalidOptions)
	}
	if o.ZScore < 0 {
		return fmt.Errorf("z-score of %f, %w", o.ZScore, ErrInvalidOptions)
	}
	return nil
}

func resolveOptions(opt *Options) (*Options, error) {
	if opt == nil {
		return NewDefaultOptions(), nil
	}
	if err := opt.Validate(); err != nil {
		return nil, err
	}
	o := *opt
	return &o, nil
}
