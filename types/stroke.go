package types

import "math"

type Tool string

const (
	ToolBrush  Tool = "brush"
	ToolEraser Tool = "eraser"
)

// Stroke is one line segment of a drag. Never mutated once committed.
type Stroke struct {
	X1    float64 `json:"x1"`
	Y1    float64 `json:"y1"`
	X2    float64 `json:"x2"`
	Y2    float64 `json:"y2"`
	Color string  `json:"color"`
	Size  float64 `json:"size"`
	Tool  Tool    `json:"tool"`
}

// Valid reports whether the stroke can be committed to a history.
func (s Stroke) Valid() bool {
	if s.Tool != ToolBrush && s.Tool != ToolEraser {
		return false
	}
	if s.Color == "" || !finite(s.Size) || s.Size <= 0 {
		return false
	}
	return finite(s.X1) && finite(s.Y1) && finite(s.X2) && finite(s.Y2)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
