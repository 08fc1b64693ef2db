// Package quant maps 8-bit intensities onto the reduced level set of a
// target bit depth and applies the gamma remap used when a level is written
// back to a raster.
//
// All functions take bits in [1,8]. Values outside that range are a caller
// error and are not checked here; use ValidBits before calling.
package quant

import "math"

const (
	MinBits = 1
	MaxBits = 8
)

// ValidBits reports whether bits is a supported output depth.
func ValidBits(bits int) bool {
	return bits >= MinBits && bits <= MaxBits
}

// LevelCount returns the number of quantization steps above zero, 2^bits-1.
func LevelCount(bits int) int {
	return 1<<bits - 1
}

// Step returns the distance between two adjacent levels on the 0..255 scale.
func Step(bits int) float64 {
	return 255 / float64(LevelCount(bits))
}

// Quantize returns the level nearest to v.
func Quantize(v uint8, bits int) uint8 {
	return Level(Index(float64(v)/255, bits), bits)
}

// Index returns the index of the level nearest to x, an intensity on the
// 0..1 scale. Halves round up and the result is clamped to [0,LevelCount].
func Index(x float64, bits int) int {
	lc := LevelCount(bits)
	if math.IsNaN(x) {
		return 0
	}
	return int(clamp(round(float64(lc)*x), 0, float64(lc)))
}

// Floor returns the index of the highest level that is not above v.
func Floor(v uint8, bits int) int {
	return LevelCount(bits) * int(v) / 255
}

// Level returns the 8-bit value of level index k. k is clamped to the
// valid index range.
func Level(k, bits int) uint8 {
	lc := LevelCount(bits)
	k = min(max(k, 0), lc)
	return uint8(round(float64(k) * 255 / float64(lc)))
}

// Value returns level index k on the 0..255 scale without rounding, the
// value Commit expects. k is clamped to the valid index range.
func Value(k, bits int) float64 {
	lc := LevelCount(bits)
	k = min(max(k, 0), lc)
	return float64(k) / float64(lc) * 255
}

// Levels lists every level of the given depth in ascending order.
func Levels(bits int) []uint8 {
	lc := LevelCount(bits)
	res := make([]uint8, lc+1)
	for k := range res {
		res[k] = Level(k, bits)
	}
	return res
}

// Commit applies the gamma remap to value (0..255) and returns the byte
// that is stored in the raster.
func Commit(value, gamma float64) uint8 {
	value = clamp(value, 0, 255)
	return uint8(clamp(round(math.Pow(value/255, gamma)*255), 0, 255))
}

// round rounds half up, 0.5 goes to 1 and -0.5 goes to 0.
func round(x float64) float64 {
	return math.Floor(x + 0.5)
}

func clamp(x, lo, hi float64) float64 {
	if math.IsNaN(x) {
		return lo
	}
	return min(max(x, lo), hi)
}
