package cyclic

import (
	"strconv"

	"github.com/mrz1836/cyclic/internal/gf2"
	cyclicerr "github.com/mrz1836/cyclic/pkg/errors"
)

// checkParams validates the (n, k, g) triple shared by every builder.
func checkParams(n, k int, g gf2.Poly) error {
	if k <= 0 || n <= k || n > gf2.MaxBits {
		return cyclicerr.WithDetails(ErrInvalidCodeParams, map[string]string{
			"n": strconv.Itoa(n),
			"k": strconv.Itoa(k),
		})
	}
	if g.Degree() != n-k {
		return cyclicerr.WithDetails(ErrInvalidGeneratorDegree, map[string]string{
			"degree":   strconv.Itoa(g.Degree()),
			"expected": strconv.Itoa(n - k),
		})
	}
	return nil
}

// GeneratorMatrix returns the k×n generator matrix of the code. Row i holds
// the coefficients of g shifted right by i positions, i.e. x^i·g(x).
func GeneratorMatrix(n, k int, g gf2.Poly) (*gf2.Matrix, error) {
	if err := checkParams(n, k, g); err != nil {
		return nil, err
	}

	m, err := gf2.NewMatrix(k, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < k; i++ {
		m.SetRow(i, g<<uint(i))
	}
	return m, nil
}

// ParityCheckMatrix returns the (n-k)×n parity-check matrix of the code.
// Column j holds the coefficients of x^j mod g(x), row index = coefficient
// index, so H·c is the remainder of c(x) divided by g(x).
func ParityCheckMatrix(n, k int, g gf2.Poly) (*gf2.Matrix, error) {
	if err := checkParams(n, k, g); err != nil {
		return nil, err
	}

	r := n - k
	m, err := gf2.NewMatrix(r, n)
	if err != nil {
		return nil, err
	}
	for j := 0; j < n; j++ {
		col, err := gf2.RemainderOfXK(j, g, r)
		if err != nil {
			return nil, err
		}
		for i, v := range col {
			m.Set(i, j, v)
		}
	}
	return m, nil
}

// BuildMatrices returns G and H for the code.
func BuildMatrices(n, k int, g gf2.Poly) (gm, hm *gf2.Matrix, err error) {
	if gm, err = GeneratorMatrix(n, k, g); err != nil {
		return nil, nil, err
	}
	if hm, err = ParityCheckMatrix(n, k, g); err != nil {
		return nil, nil, err
	}
	return gm, hm, nil
}
