package render

import "math"

// vignette darkens the frame radially from its centre. strength is the
// darkening at the corners; the flashlight boost halves it.
func vignette(f *Frame, boost, strength float64) {
	if strength <= 0 {
		return
	}
	strength *= 1 - 0.5*math.Max(0, math.Min(1, boost))

	w, h := f.Width(), f.Height()
	cx, cy := float64(w)/2, float64(h)/2
	maxR2 := cx*cx + cy*cy
	pix := f.Image.Pix
	for y := 0; y < h; y++ {
		dy := float64(y) + 0.5 - cy
		row := f.Image.PixOffset(0, y)
		for x := 0; x < w; x++ {
			i := row + x*4
			if pix[i] == 0 && pix[i+1] == 0 && pix[i+2] == 0 {
				continue
			}
			dx := float64(x) + 0.5 - cx
			k := 1 - strength*(dx*dx+dy*dy)/maxR2
			if k >= 1 {
				continue
			}
			if k < 0 {
				k = 0
			}
			pix[i] = uint8(float64(pix[i]) * k)
			pix[i+1] = uint8(float64(pix[i+1]) * k)
			pix[i+2] = uint8(float64(pix[i+2]) * k)
		}
	}
}
