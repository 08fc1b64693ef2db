package dither

import (
	"fmt"
	"strconv"
	"strings"
)

// Algorithm selects the ditherer that runs on a raster. The numeric values
// are the selector codes accepted on the command line.
type Algorithm int

const (
	None Algorithm = iota
	Ordered
	Random
	FloydSteinberg
	Jarvis
	Sierra
	Atkinson
	Halftone

	algorithmCount
)

var algorithmNames = [algorithmCount]string{
	"none", "ordered", "random", "floyd-steinberg", "jarvis", "sierra", "atkinson", "halftone",
}

func (a Algorithm) String() string {
	if a.Valid() {
		return algorithmNames[a]
	}
	return fmt.Sprintf("Algorithm(%d)", int(a))
}

func (a Algorithm) Valid() bool {
	return a >= 0 && a < algorithmCount
}

// Diffusing reports whether a propagates quantization error.
func (a Algorithm) Diffusing() bool {
	switch a {
	case FloydSteinberg, Jarvis, Sierra, Atkinson:
		return true
	}
	return false
}

// AlgorithmNames lists the names accepted by ParseAlgorithm in selector order.
func AlgorithmNames() []string {
	return algorithmNames[:]
}

// ParseAlgorithm accepts an algorithm name (case insensitive) or its
// numeric selector code.
func ParseAlgorithm(s string) (Algorithm, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		if a := Algorithm(n); a.Valid() {
			return a, nil
		}
		return None, fmt.Errorf("%w: unknown algorithm code %d", ErrInvalidParameter, n)
	}
	for i, name := range algorithmNames {
		if s == name {
			return Algorithm(i), nil
		}
	}
	return None, fmt.Errorf("%w: unknown algorithm %q", ErrInvalidParameter, s)
}

func (a Algorithm) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("%w: unknown algorithm code %d", ErrInvalidParameter, int(a))
	}
	return []byte(a.String()), nil
}

func (a *Algorithm) UnmarshalText(text []byte) error {
	v, err := ParseAlgorithm(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}
