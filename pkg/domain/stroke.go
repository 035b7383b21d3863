package domain

// Point は画像ネイティブピクセル空間上の座標です。
type Point struct {
	X float64
	Y float64
}

// BrushMode はストロークの合成モードです。
type BrushMode int

const (
	// BrushPaint は不透明なマークを描画します。
	BrushPaint BrushMode = iota
	// BrushErase は塗られたピクセルを透明に戻します。ブラシ形状は BrushPaint と同一です。
	BrushErase
)

// Stroke は1本のブラシストロークです。点列はサンプリング順を保持します。
// セッション中のストロークは追記専用で、蓄積されたストローク列が
// マスクの内容を完全に決定します。
type Stroke struct {
	Mode   BrushMode
	Radius float64
	Points []Point
}
