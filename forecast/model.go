package forecast

import "fmt"

// NewModel constructs the built-in model for a method. Methods backed by an external plugin are
// not constructed here and return ErrUnknownMethod.
func NewModel(method Method, opt *Options) (Model, error) {
	switch method {
	case LinearTrend:
		return NewLinearTrend(opt)
	case MovingAverage:
		return NewMovingAverage(opt)
	case ExponentialSmoothing:
		return NewExponentialSmoothing(opt)
	default:
		return nil, fmt.Errorf("%s is not a built-in method, %w", method, ErrUnknownMethod)
	}
}
