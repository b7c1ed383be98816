package forecast

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMethod(t *testing.T) {
	testData := map[string]struct {
		input    string
		expected Method
		err      error
	}{
		"linear trend":          {input: "linear_trend", expected: LinearTrend},
		"moving average":        {input: "moving_average", expected: MovingAverage},
		"exponential smoothing": {input: "exponential_smoothing", expected: ExponentialSmoothing},
		"prophet":               {input: "prophet", expected: Prophet},
		"case and space":        {input: "  Moving_Average ", expected: MovingAverage},
		"hyphens":               {input: "exponential-smoothing", expected: ExponentialSmoothing},
		"alias":                 {input: "sma", expected: MovingAverage},
		"empty":                 {input: "", err: ErrUnknownMethod},
		"unknown":               {input: "arima", err: ErrUnknownMethod},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			res, err := ParseMethod(td.input)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.Nil(t, err)
			assert.Equal(t, td.expected, res)
		})
	}
}

func TestMethodString(t *testing.T) {
	assert.Equal(t, "linear_trend", LinearTrend.String())
	assert.Equal(t, "prophet", Prophet.String())
	assert.Equal(t, "method(9)", Method(9).String())
	assert.False(t, Method(9).Valid())
}

func TestMethodJSON(t *testing.T) {
	type request struct {
		Method Method `json:"forecast_method"`
	}

	out, err := json.Marshal(request{Method: MovingAverage})
	require.Nil(t, err)
	assert.Equal(t, `{"forecast_method":"moving_average"}`, string(out))

	var req request
	require.Nil(t, json.Unmarshal([]byte(`{"forecast_method":"exponential_smoothing"}`), &req))
	assert.Equal(t, ExponentialSmoothing, req.Method)

	err = json.Unmarshal([]byte(`{"forecast_method":"holt_winters"}`), &req)
	assert.ErrorContains(t, err, ErrUnknownMethod.Error())

	_, err = json.Marshal(request{Method: Method(200)})
	assert.Error(t, err)
}

func TestOptionsValidate(t *testing.T) {
	testData := map[string]struct {
		opt *Options
		err error
	}{
		"defaults":       {opt: NewDefaultOptions()},
		"zero window":    {opt: &Options{Window: 0, Alpha: 0.3, ZScore: 1}, err: ErrInvalidOptions},
		"zero alpha":     {opt: &Options{Window: 7, Alpha: 0, ZScore: 1}, err: ErrInvalidOptions},
		"alpha too big":  {opt: &Options{Window: 7, Alpha: 1.1, ZScore: 1}, err: ErrInvalidOptions},
		"negative score": {opt: &Options{Window: 7, Alpha: 0.3, ZScore: -1}, err: ErrInvalidOptions},
		"no band":        {opt: &Options{Window: 7, Alpha: 0.3, ZScore: 0}},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			err := td.opt.Validate()
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			assert.Nil(t, err)
		})
	}
}
