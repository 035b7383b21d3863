package editor

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shouni/gemini-edit-kit/pkg/domain"
)

// binarizeThreshold はマスク出力時に「塗られている」とみなすアルファ値の下限です。
// ブラシは 0 か 0xFF しか書かないため、現状は境界値になりません。
const binarizeThreshold = 0x80

// Session は1回の編集セッションの描画アリーナです。ストローク記録と
// ネイティブ解像度のサーフェスを排他的に所有し、キャンセル時はそのまま破棄、
// 保存時に一度だけ ExportMask でマスク画像へ変換します。
// 並行アクセスは想定しません（所有者は常に1つ）。
type Session struct {
	id      string
	width   int
	height  int
	surface *image.Alpha
	strokes []domain.Stroke
	current *domain.Stroke
}

// NewSession は width × height の完全に透明なサーフェスを持つセッションを
// 作成します。ソース画像の読み込みが済んでおらず寸法が確定していない
// 場合（0以下）は作成を拒否します。描画と出力はセッションの存在が前提なので、
// これが「寸法未確定の間は描画無効」のゲートになります。
func NewSession(width, height int) (*Session, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("サーフェス寸法が確定していません: %dx%d", width, height)
	}

	s := &Session{
		id:      uuid.NewString(),
		width:   width,
		height:  height,
		surface: image.NewAlpha(image.Rect(0, 0, width, height)),
	}
	slog.Info("編集セッションを開始しました", "session_id", s.id, "width", width, "height", height)
	return s, nil
}

// ID はログや呼び出し側の対応付けに使うセッション識別子を返します。
func (s *Session) ID() string {
	return s.id
}

// Size はサーフェスのネイティブ寸法を返します。
func (s *Session) Size() (width, height int) {
	return s.width, s.height
}

// StrokeCount は確定済みストロークの本数を返します。
func (s *Session) StrokeCount() int {
	return len(s.strokes)
}

// BeginStroke は新しいストロークを開始し、最初の点を打点します。
// 打点は長さ0の線分として描かれるため、半径 radius の円になります。
// 進行中のストロークがあれば先に確定します。
func (s *Session) BeginStroke(mode domain.BrushMode, radius float64, pt domain.Point) {
	s.EndStroke()
	s.current = &domain.Stroke{Mode: mode, Radius: radius, Points: []domain.Point{pt}}
	applySegment(s.surface, pt, pt, radius, mode)
}

// ExtendStroke は進行中のストロークへ点を追加し、直前の点と結んで描画します。
// サーフェスは呼び出しが返る前に更新されます（点のサンプリング順のまま描画）。
// BeginStroke 前の呼び出しは何もしません。
func (s *Session) ExtendStroke(pt domain.Point) {
	if s.current == nil {
		return
	}
	last := s.current.Points[len(s.current.Points)-1]
	s.current.Points = append(s.current.Points, pt)
	applySegment(s.surface, last, pt, s.current.Radius, s.current.Mode)
}

// EndStroke は進行中のストロークを記録へ確定します。サーフェスへの
// 追加描画はありません。進行中のストロークがなければ何もしません。
func (s *Session) EndStroke() {
	if s.current == nil {
		return
	}
	s.strokes = append(s.strokes, *s.current)
	s.current = nil
}

// Clear はサーフェスとストローク記録を空へ戻します。ブラシモードとは無関係です。
func (s *Session) Clear() {
	for i := range s.surface.Pix {
		s.surface.Pix[i] = 0
	}
	s.strokes = s.strokes[:0]
	s.current = nil
}

// ExportMask は蓄積されたストロークを白黒二値のマスクへ変換します。
// 出力バッファをまず全面黒で用意し、塗られたピクセルだけを白へ置き換えます
// （透明サーフェスを直接出力しない2段構え。下流は不透明な二値マスクを期待する）。
// 出力寸法は編集中の表示矩形に関わらず常にネイティブ寸法と一致し、
// 新しいストロークを挟まない再出力はバイト単位で同一になります。
func (s *Session) ExportMask() (*domain.ImageBuffer, error) {
	out := image.NewGray(image.Rect(0, 0, s.width, s.height))
	// image.Gray のゼロ値は黒。Alpha と Gray は同一矩形なら Pix 配置も一致する。
	for i, a := range s.surface.Pix {
		if a >= binarizeThreshold {
			out.Pix[i] = 0xFF
		}
	}

	buf := new(bytes.Buffer)
	if err := png.Encode(buf, out); err != nil {
		return nil, fmt.Errorf("マスクのPNGエンコードに失敗しました: %w", err)
	}

	slog.Info("マスクを出力しました", "session_id", s.id, "width", s.width, "height", s.height, "strokes", len(s.strokes))
	return &domain.ImageBuffer{
		Data:     buf.Bytes(),
		MIMEType: "image/png",
		Width:    s.width,
		Height:   s.height,
	}, nil
}
