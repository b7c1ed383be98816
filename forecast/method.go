package forecast

import (
	"fmt"
	"strings"
)

// Method names a forecast method
type Method uint8

const (
	LinearTrend Method = iota
	MovingAverage
	ExponentialSmoothing
	Prophet
)

var methodNames = [...]string{
	LinearTrend:          "linear_trend",
	MovingAverage:        "moving_average",
	ExponentialSmoothing: "exponential_smoothing",
	Prophet:              "prophet",
}

var methodAliases = map[string]Method{
	"linear":      LinearTrend,
	"trend":       LinearTrend,
	"ma":          MovingAverage,
	"sma":         MovingAverage,
	"exponential": ExponentialSmoothing,
	"ses":         ExponentialSmoothing,
}

// BuiltinMethods lists the methods implemented in this package
func BuiltinMethods() []Method {
	return []Method{LinearTrend, MovingAverage, ExponentialSmoothing}
}

func (m Method) String() string {
	if int(m) < len(methodNames) {
		return methodNames[m]
	}
	return fmt.Sprintf("method(%d)", uint8(m))
}

func (m Method) Valid() bool {
	return int(m) < len(methodNames)
}

// ParseMethod resolves a method from its wire name. Matching ignores case, surrounding space and
// treats hyphens as underscores.
func ParseMethod(s string) (Method, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for m, name := range methodNames {
		if name == key {
			return Method(m), nil
		}
	}
	if m, ok := methodAliases[key]; ok {
		return m, nil
	}
	return 0, fmt.Errorf("%q, %w", s, ErrUnknownMethod)
}

func (m Method) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%d, %w", uint8(m), ErrUnknownMethod)
	}
	return []byte(m.String()), nil
}

func (m *Method) UnmarshalText(text []byte) error {
	parsed, err := ParseMethod(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
