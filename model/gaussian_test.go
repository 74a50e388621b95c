package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalGammaValidation(t *testing.T) {
	assert := assert.New(t)

	var err error

	_, err = NewNormalGamma(0, 0, 1, 1)
	assert.Error(err)
	_, err = NewNormalGamma(0, 1, -1, 1)
	assert.Error(err)
	_, err = NewNormalGamma(0, 1, 1, 0)
	assert.Error(err)

	ng, err := NewNormalGamma(0, 1, 1, 1)
	assert.NoError(err)
	assert.NotNil(ng)
}

func TestNormalGammaBasics(t *testing.T) {
	assert := assert.New(t)

	ng, err := NewNormalGamma(0, 1, 1, 1)
	assert.NoError(err)

	// Empty and ragged inputs fail
	_, err = ng.LogMarginalLikelihood(nil)
	assert.Error(err)
	_, err = ng.LogMarginalLikelihood([]Point{{1, 2}, {1}})
	assert.Error(err)

	// Single point: finite and deterministic
	one, err := ng.LogMarginalLikelihood([]Point{{0.5, -0.5}})
	assert.NoError(err)
	assert.False(math.IsNaN(one) || math.IsInf(one, 0))

	again, err := ng.LogMarginalLikelihood([]Point{{0.5, -0.5}})
	assert.NoError(err)
	assert.Equal(one, again)
}

func TestNormalGammaPrefersTightClusters(t *testing.T) {
	assert := assert.New(t)

	ng, err := NewNormalGamma(0, 1, 1, 1)
	assert.NoError(err)

	tight := []Point{{0.0}, {0.1}, {-0.1}, {0.05}}
	spread := []Point{{-20.0}, {10.0}, {30.0}, {-15.0}}

	tml, err := ng.LogMarginalLikelihood(tight)
	assert.NoError(err)
	sml, err := ng.LogMarginalLikelihood(spread)
	assert.NoError(err)

	assert.True(tml > sml, "tight=%f should beat spread=%f", tml, sml)
}

func TestNormalGammaSinglePointClosedForm(t *testing.T) {
	assert := assert.New(t)

	ng, err := NewNormalGamma(0, 1, 1, 1)
	assert.NoError(err)

	// For one point x in 1-D the marginal is a Student-t; with this prior:
	// logML = lgamma(3/2) - lgamma(1) + 0 - (3/2)*log(1 + x^2/4)
	//         + 0.5*(log(1) - log(2)) - 0.5*log(2*pi)
	x := 0.75
	lg32, _ := math.Lgamma(1.5)
	exp := lg32 - (1.5)*math.Log(1+x*x/4) - 0.5*math.Log(2) - 0.5*math.Log(2*math.Pi)

	got, err := ng.LogMarginalLikelihood([]Point{{x}})
	assert.NoError(err)
	assert.InDelta(exp, got, 1e-10)
}
