package enhance

import (
	"image"
	"image/color"
	"sort"

	"github.com/disintegration/imaging"
)

// medianFilter replaces each pixel with the median of its size×size
// neighborhood per channel. disintegration/imaging has no median filter, so
// this is a direct, deliberately simple implementation of the
// { median_size } parameter from spec.md §3.
func medianFilter(img image.Image, size int) image.Image {
	if size < 2 {
		return img
	}
	src := imaging.Clone(img)
	bounds := src.Bounds()
	out := image.NewNRGBA(bounds)
	radius := size / 2

	window := make([]uint8, 0, size*size)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r := medianChannel(src, bounds, x, y, radius, window, channelR)
			g := medianChannel(src, bounds, x, y, radius, window, channelG)
			b := medianChannel(src, bounds, x, y, radius, window, channelB)
			_, _, _, a := src.At(x, y).RGBA()
			out.Set(x, y, color.NRGBA{R: r, G: g, B: b, A: uint8(a >> 8)})
		}
	}
	return out
}

type channelSelector int

const (
	channelR channelSelector = iota
	channelG
	channelB
)

func medianChannel(img *image.NRGBA, bounds image.Rectangle, x, y, radius int, window []uint8, ch channelSelector) uint8 {
	window = window[:0]
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			px, py := clamp(x+dx, bounds.Min.X, bounds.Max.X-1), clamp(y+dy, bounds.Min.Y, bounds.Max.Y-1)
			r, g, b, _ := img.At(px, py).RGBA()
			switch ch {
			case channelR:
				window = append(window, uint8(r>>8))
			case channelG:
				window = append(window, uint8(g>>8))
			default:
				window = append(window, uint8(b>>8))
			}
		}
	}
	sort.Slice(window, func(i, j int) bool { return window[i] < window[j] })
	return window[len(window)/2]
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// adaptiveThreshold is a simple global-mean binarization used as the
// experimental adaptive-threshold step of the OpenCvAdvanced filter
// (spec.md §4.2).
func adaptiveThreshold(img image.Image) image.Image {
	gray := imaging.Grayscale(img)
	bounds := gray.Bounds()

	var sum, count int64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, _, _, _ := gray.At(x, y).RGBA()
			sum += int64(r >> 8)
			count++
		}
	}
	if count == 0 {
		return img
	}
	mean := uint8(sum / count)

	out := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, _, _, _ := gray.At(x, y).RGBA()
			if uint8(r>>8) > mean {
				out.SetGray(x, y, color.Gray{Y: 255})
			} else {
				out.SetGray(x, y, color.Gray{Y: 0})
			}
		}
	}
	return out
}

// unsharpMask sharpens by adding back a scaled high-pass residual
// (original minus a Gaussian blur), matching the { unsharp_radius,
// unsharp_percent } parameters of spec.md §3.
func unsharpMask(img image.Image, radius, amount float64) image.Image {
	blurred := imaging.Blur(img, radius)
	bounds := img.Bounds()
	out := image.NewNRGBA(bounds)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			or, og, ob, oa := img.At(x, y).RGBA()
			br, bg, bb, _ := blurred.At(x, y).RGBA()

			r := sharpenChannel(or, br, amount)
			g := sharpenChannel(og, bg, amount)
			b := sharpenChannel(ob, bb, amount)
			out.Set(x, y, color.NRGBA{R: r, G: g, B: b, A: uint8(oa >> 8)})
		}
	}
	return out
}

func sharpenChannel(orig, blurred uint32, amount float64) uint8 {
	o, b := float64(orig>>8), float64(blurred>>8)
	v := o + amount*(o-b)
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	return uint8(v)
}
