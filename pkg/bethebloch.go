package lfpid

import "math"

// All arithmetic below is single precision. The float64 math functions are
// rounded back to float32 after every call, which reproduces the sqrtf, powf
// and logf results the default constants were tuned with.

func sqrtf(x float32) float32   { return float32(math.Sqrt(float64(x))) }
func powf(x, y float32) float32 { return float32(math.Pow(float64(x), float64(y))) }
func logf(x float32) float32    { return float32(math.Log(float64(x))) }

// BetheBlochAleph is the ALEPH parametrization of the mean energy loss as a
// function of betaGamma:
//
//	beta = bg / sqrt(1 + bg^2)
//	f(bg) = (kp2 - beta^kp4 - ln(kp3 + bg^-kp5)) * kp1 / beta^kp4
func BetheBlochAleph(bg, kp1, kp2, kp3, kp4, kp5 float32) float32 {
	beta := bg / sqrtf(1+bg*bg)
	aa := powf(beta, kp4)
	bb := powf(1/bg, kp5)
	bb = logf(kp3 + bb)
	return (kp2 - aa - bb) * kp1 / aa
}

func signalAt(s Species, bg float32, p ParameterSet) float32 {
	return p.Mip * BetheBlochAleph(bg, p.BB1, p.BB2, p.BB3, p.BB4, p.BB5) * powf(s.Charge(), p.Exp)
}

// ExpectedSignal returns the expected TPC dE/dx of a track with the given
// inner parameter under the mass hypothesis s.
func ExpectedSignal(s Species, innerParam float32, p ParameterSet) float32 {
	invMass := 1 / s.MassOverZ()
	return signalAt(s, innerParam*invMass, p)
}

// ExpectedResolution returns the absolute dE/dx uncertainty for hypothesis s.
// The curve is re-evaluated at a momentum smeared by res*sqrt(dEdx); unlike
// ExpectedSignal the betaGamma uses the full rest mass. The result is NaN
// where ExpectedSignal is negative.
func ExpectedResolution(s Species, innerParam float32, p ParameterSet) float32 {
	invMass := 1 / s.Mass()
	dEdx := ExpectedSignal(s, innerParam, p)
	deltaP := p.Res * sqrtf(dEdx)
	bgDelta := innerParam * (1 + deltaP) * invMass
	dEdx2 := signalAt(s, bgDelta, p)
	return float32(math.Abs(float64(dEdx2 - dEdx)))
}
