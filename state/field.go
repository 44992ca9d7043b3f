package state

// Field is a dense interior snapshot of all variables at one time level,
// laid out like the global array without the ghost border.
type Field struct {
	NumVars int
	W, H    int
	Data    []float32
}

// NewField allocates a zeroed field.
func NewField(w, h, numVars int) Field {
	return Field{
		NumVars: numVars,
		W:       w,
		H:       h,
		Data:    make([]float32, w*h*numVars),
	}
}

func (f Field) offset(x, y, v int) int {
	return v*f.W*f.H + x*f.H + y
}

// At returns one cell.
func (f Field) At(x, y, v int) float32 {
	return f.Data[f.offset(x, y, v)]
}

// Set assigns one cell.
func (f Field) Set(x, y, v int, value float32) {
	f.Data[f.offset(x, y, v)] = value
}

// Fill assigns every cell from a generator called in layout order.
func (f Field) Fill(gen func() float32) {
	for i := range f.Data {
		f.Data[i] = gen()
	}
}

// Plane returns variable v as rows of y, one row per x.
func (f Field) Plane(v int) [][]float32 {
	rows := make([][]float32, f.W)
	for x := range rows {
		start := f.offset(x, 0, v)
		rows[x] = f.Data[start : start+f.H]
	}

	return rows
}
