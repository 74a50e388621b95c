package model

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"
)

// NormalGamma is a collapsed Gaussian data model: each dimension carries an
// independent Normal-Gamma prior over its mean and precision (diagonal
// covariance), so the marginal likelihood of a point set integrates both out
// in closed form. Mu0 is the prior mean, Kappa0 the prior strength on the
// mean, and Alpha0/Beta0 shape the precision's Gamma prior.
type NormalGamma struct {
	Mu0    float64
	Kappa0 float64
	Alpha0 float64
	Beta0  float64
}

// NewNormalGamma returns a validated collapsed Gaussian model.
func NewNormalGamma(mu0 float64, kappa0 float64, alpha0 float64, beta0 float64) (*NormalGamma, error) {
	if kappa0 <= 0 {
		return nil, errors.Errorf("Invalid kappa0 %f - must be positive", kappa0)
	}
	if alpha0 <= 0 {
		return nil, errors.Errorf("Invalid alpha0 %f - must be positive", alpha0)
	}
	if beta0 <= 0 {
		return nil, errors.Errorf("Invalid beta0 %f - must be positive", beta0)
	}

	ng := &NormalGamma{
		Mu0:    mu0,
		Kappa0: kappa0,
		Alpha0: alpha0,
		Beta0:  beta0,
	}

	return ng, nil
}

// LogMarginalLikelihood implements DataModel. Each dimension contributes
// independently; the per-dimension posterior parameters follow the standard
// Normal-Gamma update.
func (ng *NormalGamma) LogMarginalLikelihood(points []Point) (float64, error) {
	if err := CheckDataset(points); err != nil {
		return 0, errors.Wrap(err, "Can not score invalid point set")
	}

	dims := len(points[0])
	n := float64(len(points))
	kappaN := ng.Kappa0 + n
	alphaN := ng.Alpha0 + n/2

	lgA0, _ := math.Lgamma(ng.Alpha0)
	lgAN, _ := math.Lgamma(alphaN)

	// Per-dimension constant pieces
	perDim := lgAN - lgA0 +
		ng.Alpha0*math.Log(ng.Beta0) +
		0.5*(math.Log(ng.Kappa0)-math.Log(kappaN)) -
		(n/2)*math.Log(2*math.Pi)

	col := make([]float64, len(points))

	logML := 0.0
	for d := 0; d < dims; d++ {
		for i, p := range points {
			col[i] = p[d]
		}

		mean := stat.Mean(col, nil)
		ss := stat.MomentAbout(2, col, mean, nil) * n

		dev := mean - ng.Mu0
		betaN := ng.Beta0 + 0.5*ss + (ng.Kappa0*n*dev*dev)/(2*kappaN)

		logML += perDim - alphaN*math.Log(betaN)
	}

	return logML, nil
}
