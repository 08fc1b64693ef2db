package dither

// Matrix is a square threshold table tiled over the raster. Its cells hold
// every integer from 0 to Max exactly once.
type Matrix struct {
	size  int
	max   int
	cells []int
}

func newMatrix(size int, rows ...[]int) *Matrix {
	m := &Matrix{size: size, max: size*size - 1}
	for _, row := range rows {
		m.cells = append(m.cells, row...)
	}
	return m
}

var (
	OrderedMatrix = newMatrix(8,
		[]int{0, 48, 12, 60, 3, 51, 15, 63},
		[]int{32, 16, 44, 28, 35, 19, 47, 31},
		[]int{8, 56, 4, 52, 11, 59, 7, 55},
		[]int{40, 24, 36, 20, 43, 27, 39, 23},
		[]int{2, 50, 14, 62, 1, 49, 13, 61},
		[]int{34, 18, 46, 30, 33, 17, 45, 29},
		[]int{10, 58, 6, 54, 9, 57, 5, 53},
		[]int{42, 26, 38, 22, 41, 25, 37, 21},
	)

	HalftoneMatrix = newMatrix(4,
		[]int{12, 5, 6, 13},
		[]int{4, 0, 1, 7},
		[]int{11, 3, 2, 8},
		[]int{15, 10, 9, 14},
	)
)

func (m *Matrix) Size() int { return m.size }
func (m *Matrix) Max() int  { return m.max }

// At returns the threshold tiled at (row, col).
func (m *Matrix) At(row, col int) int {
	return m.cells[(row%m.size)*m.size+col%m.size]
}

// Bump compares the normalized intensity against the normalized threshold.
func (m *Matrix) Bump(row, col int, v uint8) bool {
	return float64(v)/255 >= float64(m.At(row, col))/float64(m.max)
}
