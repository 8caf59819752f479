package tray

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"sync"
)

const iconSize = 64

var (
	iconOnce  sync.Once
	iconBytes []byte
)

// IconPNG returns the tray image: a blue tile holding a white clock face.
func IconPNG() []byte {
	iconOnce.Do(func() {
		var buf bytes.Buffer
		if err := png.Encode(&buf, drawIcon()); err == nil {
			iconBytes = buf.Bytes()
		}
	})
	return iconBytes
}

func drawIcon() image.Image {
	var (
		blue  = color.RGBA{R: 0x2d, G: 0x6c, B: 0xdf, A: 0xff}
		white = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
		hand  = color.RGBA{R: 0x1b, G: 0x2a, B: 0x49, A: 0xff}
	)

	img := image.NewRGBA(image.Rect(0, 0, iconSize, iconSize))
	c := float64(iconSize-1) / 2
	const (
		face  = 24.0
		rim   = 2.5
		hourL = 11.0
		minL  = 17.0
		width = 2.0
	)

	for y := 0; y < iconSize; y++ {
		for x := 0; x < iconSize; x++ {
			dx, dy := float64(x)-c, float64(y)-c
			r := math.Hypot(dx, dy)

			px := blue
			switch {
			case r > face:
			case r > face-rim:
				px = hand
			default:
				px = white
				// Hour hand points up, minute hand to three o'clock.
				if math.Abs(dx) <= width/2 && dy <= 0 && -dy <= hourL {
					px = hand
				}
				if math.Abs(dy) <= width/2 && dx >= 0 && dx <= minL {
					px = hand
				}
			}
			img.SetRGBA(x, y, px)
		}
	}
	return img
}
