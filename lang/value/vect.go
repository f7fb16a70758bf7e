package value

import (
	"strconv"
	"strings"
)

// Vect is a dense ordered sequence of Num.
type Vect []float64

func (Vect) sealed()      {}
func (Vect) Type() string { return "vect" }
func (v Vect) String() string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = strconv.FormatFloat(x, 'g', -1, 64)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// BoolVect is a dense ordered sequence of Bool.
type BoolVect []bool

func (BoolVect) sealed()      {}
func (BoolVect) Type() string { return "boolvect" }
func (v BoolVect) String() string {
	parts := make([]string, len(v))
	for i, x := range v {
		if x {
			parts[i] = "true"
		} else {
			parts[i] = "false"
		}
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// StrVect is a dense ordered sequence of Str.
type StrVect []string

func (StrVect) sealed()      {}
func (StrVect) Type() string { return "strvect" }
func (v StrVect) String() string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = strconv.Quote(x)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Mat is a 2-D dense matrix of Num, stored row-major.
type Mat struct {
	Rows, Cols int
	Data       []float64
}

func (*Mat) sealed()      {}
func (*Mat) Type() string { return "mat" }

// NewMat builds a Mat from row-major data; len(data) must equal rows*cols.
func NewMat(rows, cols int, data []float64) *Mat {
	return &Mat{Rows: rows, Cols: cols, Data: data}
}

// At returns the element at (r, c).
func (m *Mat) At(r, c int) float64 { return m.Data[r*m.Cols+c] }

func (m *Mat) clone() *Mat {
	return &Mat{Rows: m.Rows, Cols: m.Cols, Data: append([]float64(nil), m.Data...)}
}

func (m *Mat) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for r := 0; r < m.Rows; r++ {
		if r > 0 {
			b.WriteByte(' ')
		}
		b.WriteByte('[')
		for c := 0; c < m.Cols; c++ {
			if c > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(strconv.FormatFloat(m.At(r, c), 'g', -1, 64))
		}
		b.WriteByte(']')
	}
	b.WriteByte(']')
	return b.String()
}
