package dither

import (
	"errors"
	"testing"
)

func TestParseAlgorithm(t *testing.T) {
	cases := []struct {
		in   string
		want Algorithm
	}{
		{"none", None},
		{"Ordered", Ordered},
		{" floyd-steinberg ", FloydSteinberg},
		{"halftone", Halftone},
		{"0", None},
		{"3", FloydSteinberg},
		{"7", Halftone},
	}
	for _, c := range cases {
		got, err := ParseAlgorithm(c.in)
		if err != nil {
			t.Errorf("ParseAlgorithm(%q): %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseAlgorithm(%q) = %s, want %s", c.in, got, c.want)
		}
	}

	for _, in := range []string{"", "8", "-1", "bayer"} {
		if _, err := ParseAlgorithm(in); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("ParseAlgorithm(%q): got %v", in, err)
		}
	}
}

func TestAlgorithmText(t *testing.T) {
	for _, name := range AlgorithmNames() {
		var a Algorithm
		if err := a.UnmarshalText([]byte(name)); err != nil {
			t.Fatal(err)
		}
		text, err := a.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		if string(text) != name {
			t.Errorf("%q came back as %q", name, text)
		}
	}

	if s := Algorithm(12).String(); s != "Algorithm(12)" {
		t.Errorf("String of unknown code = %q", s)
	}
	if _, err := Algorithm(-1).MarshalText(); err == nil {
		t.Error("expected an error for an unknown code")
	}
}

func TestDiffusing(t *testing.T) {
	for alg := None; alg < algorithmCount; alg++ {
		d, err := New(alg, fixedSource(0))
		if err != nil {
			t.Fatal(err)
		}
		_, isDiffuser := d.(ErrorDiffuser)
		if isDiffuser != alg.Diffusing() {
			t.Errorf("%s: Diffusing() = %t, ditherer %T", alg, alg.Diffusing(), d)
		}
	}
}

func TestMatrices(t *testing.T) {
	for _, m := range []*Matrix{OrderedMatrix, HalftoneMatrix} {
		seen := make(map[int]bool)
		for row := range m.Size() {
			for col := range m.Size() {
				v := m.At(row, col)
				if v < 0 || v > m.Max() || seen[v] {
					t.Errorf("%dx%d matrix: bad or repeated value %d", m.Size(), m.Size(), v)
				}
				seen[v] = true
				if m.At(row+m.Size(), col+3*m.Size()) != v {
					t.Errorf("%dx%d matrix does not tile at (%d,%d)", m.Size(), m.Size(), row, col)
				}
			}
		}
		if len(seen) != m.Max()+1 {
			t.Errorf("%dx%d matrix holds %d distinct values", m.Size(), m.Size(), len(seen))
		}
	}
}
