package gemset

import "sort"

// usRingSizes maps US ring size to inner diameter in millimeters.
var usRingSizes = map[float64]float64{
	7:   17.35,
	7.5: 17.75,
	8:   18.19,
	8.5: 18.53,
	9:   19.03,
	9.5: 19.41,
	10:  19.84,
}

// USRingSize returns the finger bore inner diameter in millimeters for
// a US ring size.
func USRingSize(size float64) (float64, error) {
	d, ok := usRingSizes[size]
	if !ok {
		return 0, invalidf("unknown US ring size %g", size)
	}
	return d, nil
}

// USRingSizes lists the supported sizes in ascending order.
func USRingSizes() []float64 {
	sizes := make([]float64, 0, len(usRingSizes))
	for s := range usRingSizes {
		sizes = append(sizes, s)
	}
	sort.Float64s(sizes)
	return sizes
}
