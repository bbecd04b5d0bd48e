package domain

import (
	"fmt"
	"image"

	templatedomain "photobooth/internal/modules/template/domain"
)

// Policy selects how a photo is scaled into its slot.
type Policy string

const (
	// PolicyFillCrop scales to cover the whole slot and center-crops the
	// overflow. The slot is always filled edge to edge.
	PolicyFillCrop Policy = "fill_crop"
	// PolicyFitInside scales to fit within the slot and centers the photo,
	// leaving background visible around it.
	PolicyFitInside Policy = "fit_inside"
)

func (p Policy) Validate() error {
	switch p {
	case PolicyFillCrop, PolicyFitInside:
		return nil
	default:
		return fmt.Errorf("unknown placement policy %q", string(p))
	}
}

// Spec is one composition request: photos zipped positionally with the
// layout's slots, a per-photo filter, and a placement policy.
type Spec struct {
	PhotoPaths []string
	Filter     FilterKind
	Noise      NoiseIntensity
	Policy     Policy
	Layout     Layout
}

// Layout is the compositor's view of a template: slot rectangles resolved
// against a concrete canvas size.
type Layout struct {
	CanvasWidth    int
	CanvasHeight   int
	Rects          []templatedomain.Rect
	BackgroundPath string
	ForceNewspaper bool
	Effect         string
}

// PixelRect converts a percentage rect to canvas pixels, clipped to the
// canvas bounds. Template authors occasionally overshoot 100%; clipping at
// composition keeps those templates usable instead of rejecting them.
func PixelRect(r templatedomain.Rect, canvasW, canvasH int) image.Rectangle {
	x0 := int(r.LeftPct / 100 * float64(canvasW))
	y0 := int(r.TopPct / 100 * float64(canvasH))
	x1 := x0 + int(r.WidthPct/100*float64(canvasW))
	y1 := y0 + int(r.HeightPct/100*float64(canvasH))
	return image.Rect(x0, y0, x1, y1).Intersect(image.Rect(0, 0, canvasW, canvasH))
}
