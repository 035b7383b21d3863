package editor

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// previewHighlight は塗り領域へ重ねる半透明のハイライト色です。
var previewHighlight = color.NRGBA{R: 0x2E, G: 0xCC, B: 0x71, A: 0x80}

// Preview はソース画像の上へ塗り領域を半透明ハイライトとして合成し、
// 長辺が maxEdge 以下になるまで縮小した表示用画像を返します。
// maxEdge が 0 以下、またはネイティブ寸法が収まっている場合は等倍で返します。
// ソース寸法がセッションの寸法と一致しない場合はエラーです。
func (s *Session) Preview(src image.Image, maxEdge int) (image.Image, error) {
	b := src.Bounds()
	if b.Dx() != s.width || b.Dy() != s.height {
		return nil, fmt.Errorf("ソース画像の寸法がセッションと一致しません: %dx%d != %dx%d",
			b.Dx(), b.Dy(), s.width, s.height)
	}

	composed := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	draw.Draw(composed, composed.Bounds(), src, b.Min, draw.Src)
	draw.DrawMask(composed, composed.Bounds(), &image.Uniform{previewHighlight}, image.Point{}, s.surface, image.Point{}, draw.Over)

	if maxEdge <= 0 || (s.width <= maxEdge && s.height <= maxEdge) {
		return composed, nil
	}

	scale := float64(maxEdge) / float64(s.width)
	if s.height > s.width {
		scale = float64(maxEdge) / float64(s.height)
	}
	dw := max(int(float64(s.width)*scale), 1)
	dh := max(int(float64(s.height)*scale), 1)

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	draw.ApproxBiLinear.Scale(dst, dst.Rect, composed, composed.Bounds(), draw.Over, nil)
	return dst, nil
}
