package route

import "github.com/mdt-route/backend/internal/models"

// Planner map canvas size in pixels at scale 1.
const (
	CanvasWidth  = 840.0
	CanvasHeight = 555.0
)

// Normalize maps planner pixel coordinates into [0,1] on both axes.
// Planner y grows downward as negative values, so its magnitude is used.
// A viewport override shifts and zooms the point before scaling.
func Normalize(x, y, scale float64, vp *models.ViewportOverride) (float64, float64) {
	if scale <= 0 {
		scale = models.DefaultScaleMultiplier
	}

	adjX, adjY := x, abs(y)
	if vp != nil {
		zoom := vp.ZoomScale
		if zoom <= 0 {
			zoom = 1
		}
		adjX = (x - vp.HorizontalPan) / zoom
		adjY = (abs(y) - vp.VerticalPan) / zoom
	}

	return clamp01(adjX / (CanvasWidth * scale)), clamp01(adjY / (CanvasHeight * scale))
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
