package interaction

// Transform maps simulation space to screen space: screen = sim*K + (X, Y).
// It only affects rendering; simulation coordinates never change.
type Transform struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	K float64 `json:"k"`
}

// Identity is the unscaled, untranslated transform
var Identity = Transform{K: 1}

// Apply maps a simulation point to the screen
func (t Transform) Apply(x, y float64) (float64, float64) {
	return x*t.K + t.X, y*t.K + t.Y
}

// Invert maps a screen point back to simulation space
func (t Transform) Invert(x, y float64) (float64, float64) {
	return (x - t.X) / t.K, (y - t.Y) / t.K
}
