package models

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

var (
	ErrTargetLenMismatch        = errors.New("target length does not match target rows")
	ErrNoTrainingArray          = errors.New("no training array")
	ErrNoTargetArray            = errors.New("no target array")
	ErrNoDesignMatrix           = errors.New("no design matrix for inference")
	ErrFeatureLenMismatch       = errors.New("number of features does not match number of model coefficients")
	ErrInsufficientObservations = errors.New("fewer observations than coefficients")
	ErrSingularDesignMatrix     = errors.New("design matrix is rank deficient")
)

// OLSRegression computes ordinary least squares with an intercept using QR factorization
type OLSRegression struct {
	coef      []float64
	intercept float64
}

func NewOLSRegression() *OLSRegression {
	return &OLSRegression{}
}

// Fit solves for the coefficients given a design matrix x of m observations by n features and
// a target y of m rows by 1 column.
func (o *OLSRegression) Fit(x, y mat.Matrix) error {
	if x == nil {
		return ErrNoTrainingArray
	}
	if y == nil {
		return ErrNoTargetArray
	}
	m, _ := x.Dims()

	ym, _ := y.Dims()
	if ym != m {
		return fmt.Errorf("training data has %d rows and target has %d row, %w", m, ym, ErrTargetLenMismatch)
	}

	x = withOnes(x)
	_, n := x.Dims()
	if m < n {
		return fmt.Errorf("%d observations for %d coefficients, %w", m, n, ErrInsufficientObservations)
	}

	qr := new(mat.QR)
	qr.Factorize(x)

	q := new(mat.Dense)
	r := new(mat.Dense)

	qr.QTo(q)
	qr.RTo(r)
	yq := new(mat.Dense)
	yq.Mul(y.T(), q)

	// back substitution on the upper triangular R
	c := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		if r.At(i, i) == 0 {
			return ErrSingularDesignMatrix
		}
		c[i] = yq.At(0, i)
		for j := i + 1; j < n; j++ {
			c[i] -= c[j] * r.At(i, j)
		}
		c[i] /= r.At(i, i)
	}

	o.intercept = c[0]
	o.coef = c[1:]
	return nil
}

// Predict evaluates the fitted model on each row of x.
func (o *OLSRegression) Predict(x mat.Matrix) ([]float64, error) {
	if x == nil {
		return nil, ErrNoDesignMatrix
	}

	_, xn := x.Dims()
	if xn != len(o.coef) {
		return nil, fmt.Errorf("got %d features in design matrix, but expected %d, %w", xn, len(o.coef), ErrFeatureLenMismatch)
	}
	coef := append([]float64{o.intercept}, o.coef...)
	coefMx := mat.NewDense(1, len(coef), coef)

	var res mat.Dense
	res.Mul(coefMx, withOnes(x).T())
	return res.RawRowView(0), nil
}

func (o *OLSRegression) Intercept() float64 {
	return o.intercept
}

func (o *OLSRegression) Coef() []float64 {
	c := make([]float64, len(o.coef))
	copy(c, o.coef)
	return c
}

// IndexTrend is a line fit against the integer positions 0..n-1 of a series.
type IndexTrend struct {
	reg *OLSRegression
	n   int
}

// FitIndexTrend regresses y against its integer position. At least two observations are
// required.
func FitIndexTrend(y []float64) (*IndexTrend, error) {
	n := len(y)
	if n == 0 {
		return nil, ErrNoTargetArray
	}

	reg := NewOLSRegression()
	if err := reg.Fit(indexMatrix(0, n), mat.NewDense(n, 1, y)); err != nil {
		return nil, err
	}
	return &IndexTrend{reg: reg, n: n}, nil
}

func (t *IndexTrend) Slope() float64 {
	return t.reg.Coef()[0]
}

func (t *IndexTrend) Intercept() float64 {
	return t.reg.Intercept()
}

// Fitted evaluates the line over the training positions.
func (t *IndexTrend) Fitted() ([]float64, error) {
	return t.reg.Predict(indexMatrix(0, t.n))
}

// Extrapolate evaluates the line over the horizon positions following the training data.
func (t *IndexTrend) Extrapolate(horizon int) ([]float64, error) {
	if horizon <= 0 {
		return []float64{}, nil
	}
	return t.reg.Predict(indexMatrix(t.n, horizon))
}

func indexMatrix(start, n int) *mat.Dense {
	idx := make([]float64, n)
	for i := range idx {
		idx[i] = float64(start + i)
	}
	return mat.NewDense(n, 1, idx)
}

func withOnes(x mat.Matrix) mat.Matrix {
	m, n := x.Dims()
	xWithOnes := mat.NewDense(m, n+1, nil)
	for i := 0; i < m; i++ {
		xWithOnes.Set(i, 0, 1.0)
		for j := 0; j < n; j++ {
			xWithOnes.Set(i, j+1, x.At(i, j))
		}
	}
	return xWithOnes
}
