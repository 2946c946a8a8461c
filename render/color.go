package render

import "github.com/gdamore/tcell/v2"

// RGB stores explicit 8-bit color channels, decoupled from tcell
type RGB struct {
	R, G, B uint8
}

// Predefined colors
var (
	RGBBlack = RGB{0, 0, 0}
)

// Blend performs alpha blending: result = src*alpha + dst*(1-alpha)
func (dst RGB) Blend(src RGB, alpha float64) RGB {
	if alpha <= 0 {
		return dst
	}
	if alpha >= 1 {
		return src
	}
	inv := 1.0 - alpha
	return RGB{
		R: uint8(float64(src.R)*alpha + float64(dst.R)*inv),
		G: uint8(float64(src.G)*alpha + float64(dst.G)*inv),
		B: uint8(float64(src.B)*alpha + float64(dst.B)*inv),
	}
}

// Max returns per-channel maximum (non-destructive highlight)
func (dst RGB) Max(src RGB) RGB {
	return RGB{
		R: max(dst.R, src.R),
		G: max(dst.G, src.G),
		B: max(dst.B, src.B),
	}
}

// Color converts to a tcell true color
func (c RGB) Color() tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// rampStop is one color of a piecewise linear gradient
type rampStop struct {
	at    float64
	color RGB
}

// Terrain shading: crater floor → regolith → ridge highlight
var heightRamp = []rampStop{
	{0.0, RGB{60, 58, 70}},
	{0.35, RGB{110, 108, 118}},
	{0.7, RGB{170, 168, 160}},
	{1.0, RGB{235, 232, 220}},
}

// HeightColor returns the terrain shade for progress in [0,1] from lowest to highest vertex
func HeightColor(progress float64) RGB {
	if progress <= 0 {
		return heightRamp[0].color
	}
	if progress >= 1 {
		return heightRamp[len(heightRamp)-1].color
	}
	for i := 1; i < len(heightRamp); i++ {
		hi := heightRamp[i]
		if progress <= hi.at {
			lo := heightRamp[i-1]
			t := (progress - lo.at) / (hi.at - lo.at)
			return lo.color.Blend(hi.color, t)
		}
	}
	return heightRamp[len(heightRamp)-1].color
}

// Fade darkens c toward the background with distance, near = 1, far = 0
func Fade(c RGB, near float64) RGB {
	return RgbBackground.Blend(c, 0.35+0.65*near)
}
