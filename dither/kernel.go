package dither

import "slices"

// Tap sends Weight of a pixel's quantization error to the pixel DRow rows
// below and DCol columns to the right of it.
type Tap struct {
	DRow   int
	DCol   int
	Weight float64
}

// Kernel is an error diffusion table. Every tap points at a pixel the scan
// has not reached yet: DRow > 0, or DRow == 0 and DCol > 0.
type Kernel struct {
	name string
	taps []Tap
}

func newKernel(name string, divisor float64, taps ...[3]int) Kernel {
	k := Kernel{name: name}
	for _, t := range taps {
		k.taps = append(k.taps, Tap{DRow: t[0], DCol: t[1], Weight: float64(t[2]) / divisor})
	}
	return k
}

var (
	FloydSteinbergKernel = newKernel("floyd-steinberg", 16,
		[3]int{0, 1, 7},
		[3]int{1, -1, 3}, [3]int{1, 0, 5}, [3]int{1, 1, 1},
	)

	JarvisKernel = newKernel("jarvis", 48,
		[3]int{0, 1, 7}, [3]int{0, 2, 5},
		[3]int{1, -2, 3}, [3]int{1, -1, 5}, [3]int{1, 0, 7}, [3]int{1, 1, 5}, [3]int{1, 2, 3},
		[3]int{2, -2, 1}, [3]int{2, -1, 3}, [3]int{2, 0, 5}, [3]int{2, 1, 3}, [3]int{2, 2, 1},
	)

	SierraKernel = newKernel("sierra", 32,
		[3]int{0, 1, 5}, [3]int{0, 2, 3},
		[3]int{1, -2, 2}, [3]int{1, -1, 4}, [3]int{1, 0, 5}, [3]int{1, 1, 4}, [3]int{1, 2, 2},
		[3]int{2, -1, 2}, [3]int{2, 0, 3}, [3]int{2, 1, 2},
	)

	// Atkinson passes on only 6/8 of the error.
	AtkinsonKernel = newKernel("atkinson", 8,
		[3]int{0, 1, 1}, [3]int{0, 2, 1},
		[3]int{1, -1, 1}, [3]int{1, 0, 1}, [3]int{1, 1, 1},
		[3]int{2, 0, 1},
	)
)

func (k Kernel) Name() string { return k.name }

// Taps returns a copy of the kernel's taps.
func (k Kernel) Taps() []Tap {
	return slices.Clone(k.taps)
}

// Sum is the fraction of a pixel's error the kernel passes on.
func (k Kernel) Sum() float64 {
	var s float64
	for _, t := range k.taps {
		s += t.Weight
	}
	return s
}
