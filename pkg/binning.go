package lfpid

import "math"

// Tiny binning is the compact encoding shared by the PID tables: a signed
// byte covering [-6.35, 6.35] in steps of 0.05. The two extreme bins
// collect everything outside the range.
const (
	TinyNBins        = (1 << 8) - 2
	TinyOverflowBin  = int8(TinyNBins >> 1)
	TinyUnderflowBin = -int8(TinyNBins >> 1)
	TinyBinnedMax    = float32(6.35)
	TinyBinnedMin    = float32(-6.35)
	TinyBinWidth     = (TinyBinnedMax - TinyBinnedMin) / TinyNBins
)

// PackTiny quantizes a residual. Out of range values saturate; NaN maps to
// the overflow bin.
func PackTiny(value float32) int8 {
	switch {
	case math.IsNaN(float64(value)):
		return TinyOverflowBin
	case value <= TinyBinnedMin:
		return TinyUnderflowBin
	case value >= TinyBinnedMax:
		return TinyOverflowBin
	case value >= 0:
		return int8(value/TinyBinWidth + 0.5)
	default:
		return int8(value/TinyBinWidth - 0.5)
	}
}

// UnpackTiny returns the bin center of an encoded residual.
func UnpackTiny(b int8) float32 {
	return float32(b) * TinyBinWidth
}
