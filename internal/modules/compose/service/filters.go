package service

import (
	"image"
	"image/color"
	"math/rand"

	"github.com/disintegration/imaging"

	"photobooth/internal/modules/compose/domain"
)

// Duotone endpoints for the stylized filters. Sepia warms toward cream;
// newspaper sits on a colder ink-and-pulp pair.
var (
	sepiaBlack = color.NRGBA{R: 0x2e, G: 0x1f, B: 0x0f, A: 255}
	sepiaWhite = color.NRGBA{R: 0xf4, G: 0xe1, B: 0xc1, A: 255}
	newsBlack  = color.NRGBA{R: 0x1a, G: 0x14, B: 0x10, A: 255}
	newsWhite  = color.NRGBA{R: 0xe8, G: 0xdc, B: 0xc8, A: 255}
)

const (
	newspaperContrast   = 0.75
	newspaperBrightness = 0.92
	newspaperBlurSigma  = 0.3
)

// applyFilter runs one photo through the selected filter. rng feeds the
// newspaper grain; callers seed it per composition so identical inputs
// produce identical pixels.
func applyFilter(img image.Image, kind domain.FilterKind, noise domain.NoiseIntensity, rng *rand.Rand) *image.NRGBA {
	switch kind {
	case domain.FilterBlackWhite:
		return imaging.Grayscale(img)
	case domain.FilterSepia:
		return duotone(imaging.Grayscale(img), sepiaBlack, sepiaWhite)
	case domain.FilterNewspaper:
		out := duotone(imaging.Grayscale(img), newsBlack, newsWhite)
		out = scaleContrast(out, newspaperContrast)
		out = addLuminanceNoise(out, noise.Sigma(), rng)
		out = imaging.Blur(out, newspaperBlurSigma)
		return scaleBrightness(out, newspaperBrightness)
	default:
		return imaging.Clone(img)
	}
}

// duotone remaps a grayscale image onto a black→white color ramp. The input
// must already be desaturated, so any channel doubles as luminance.
func duotone(src *image.NRGBA, black, white color.NRGBA) *image.NRGBA {
	bounds := src.Bounds()
	out := image.NewNRGBA(bounds)
	for i := 0; i < len(src.Pix); i += 4 {
		lum := int(src.Pix[i])
		out.Pix[i+0] = rampChannel(black.R, white.R, lum)
		out.Pix[i+1] = rampChannel(black.G, white.G, lum)
		out.Pix[i+2] = rampChannel(black.B, white.B, lum)
		out.Pix[i+3] = src.Pix[i+3]
	}
	return out
}

func rampChannel(black, white uint8, lum int) uint8 {
	return uint8(int(black) + (int(white)-int(black))*lum/255)
}

// scaleContrast compresses channel values toward the midpoint.
func scaleContrast(src *image.NRGBA, factor float64) *image.NRGBA {
	lut := buildLUT(func(v float64) float64 {
		return 127.5 + (v-127.5)*factor
	})
	return applyLUT(src, lut)
}

// scaleBrightness multiplies every channel by factor.
func scaleBrightness(src *image.NRGBA, factor float64) *image.NRGBA {
	lut := buildLUT(func(v float64) float64 {
		return v * factor
	})
	return applyLUT(src, lut)
}

func buildLUT(f func(float64) float64) [256]uint8 {
	var lut [256]uint8
	for i := range lut {
		lut[i] = clampChannel(f(float64(i)))
	}
	return lut
}

func applyLUT(src *image.NRGBA, lut [256]uint8) *image.NRGBA {
	out := image.NewNRGBA(src.Bounds())
	for i := 0; i < len(src.Pix); i += 4 {
		out.Pix[i+0] = lut[src.Pix[i+0]]
		out.Pix[i+1] = lut[src.Pix[i+1]]
		out.Pix[i+2] = lut[src.Pix[i+2]]
		out.Pix[i+3] = src.Pix[i+3]
	}
	return out
}

// addLuminanceNoise adds the same zero-mean Gaussian sample to all three
// channels of each pixel, grain rather than color speckle.
func addLuminanceNoise(src *image.NRGBA, sigma float64, rng *rand.Rand) *image.NRGBA {
	out := image.NewNRGBA(src.Bounds())
	for i := 0; i < len(src.Pix); i += 4 {
		n := rng.NormFloat64() * sigma
		out.Pix[i+0] = clampChannel(float64(src.Pix[i+0]) + n)
		out.Pix[i+1] = clampChannel(float64(src.Pix[i+1]) + n)
		out.Pix[i+2] = clampChannel(float64(src.Pix[i+2]) + n)
		out.Pix[i+3] = src.Pix[i+3]
	}
	return out
}

func clampChannel(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
