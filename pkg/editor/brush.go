package editor

import (
	"image"
	"math"

	"github.com/shouni/gemini-edit-kit/pkg/domain"
)

// applySegment は2点を結ぶ太い線分をサーフェスへ合成します。形状は両端が
// 半円のカプセルで、丸いキャップとジョイントはこの形状から自然に得られます。
// 連続する点をこの線分で繋ぐ限り、ポインタが高速に動いても隙間は生じません。
// BrushPaint は不透明(0xFF)を、BrushErase は透明(0x00)を同じ形状で書き込みます。
func applySegment(surface *image.Alpha, p0, p1 domain.Point, radius float64, mode domain.BrushMode) {
	if radius <= 0 {
		return
	}

	var value uint8
	if mode == domain.BrushPaint {
		value = 0xFF
	}

	// カプセルの外接矩形だけを走査する。サーフェス外は切り詰める。
	b := surface.Bounds()
	minX := clampInt(int(math.Floor(math.Min(p0.X, p1.X)-radius)), b.Min.X, b.Max.X)
	maxX := clampInt(int(math.Ceil(math.Max(p0.X, p1.X)+radius)), b.Min.X, b.Max.X)
	minY := clampInt(int(math.Floor(math.Min(p0.Y, p1.Y)-radius)), b.Min.Y, b.Max.Y)
	maxY := clampInt(int(math.Ceil(math.Max(p0.Y, p1.Y)+radius)), b.Min.Y, b.Max.Y)

	dx := p1.X - p0.X
	dy := p1.Y - p0.Y
	lengthSq := dx*dx + dy*dy
	radiusSq := radius * radius

	for y := minY; y < maxY; y++ {
		cy := float64(y) + 0.5
		row := (y - b.Min.Y) * surface.Stride
		for x := minX; x < maxX; x++ {
			cx := float64(x) + 0.5
			if segmentDistSq(cx, cy, p0, dx, dy, lengthSq) <= radiusSq {
				surface.Pix[row+(x-b.Min.X)] = value
			}
		}
	}
}

// segmentDistSq は点 (cx, cy) から線分 p0→(p0+d) までの距離の二乗を返します。
// 長さ0の線分は点とみなします（打点は半径 radius の円になる）。
func segmentDistSq(cx, cy float64, p0 domain.Point, dx, dy, lengthSq float64) float64 {
	ex := cx - p0.X
	ey := cy - p0.Y
	if lengthSq == 0 {
		return ex*ex + ey*ey
	}

	t := (ex*dx + ey*dy) / lengthSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	ex -= t * dx
	ey -= t * dy
	return ex*ex + ey*ey
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
