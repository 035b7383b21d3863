// Package editor は1回の編集セッションに閉じた対話的マスク作成エンジンです。
// 画面座標の筆致をネイティブ解像度のサーフェスへ写し、保存時に
// ソース画像と1:1で揃った白黒二値マスクへ変換します。
package editor

import "github.com/shouni/gemini-edit-kit/pkg/domain"

// DisplayRect は描画サーフェスが現在画面上で占める矩形です。
// リサイズや回転でイベントごとに変わり得るため、呼び出し側が毎回渡します。
// このパッケージは矩形を保持しません。
type DisplayRect struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// MapToNative は画面座標の入力位置をネイティブピクセル座標へ線形変換します。
//
//	nativeX = (inputX - rect.Left) * (nativeWidth / rect.Width)
//
// 変換はイベントごとに計算し直します（レイアウト変更をまたいでキャッシュしない）。
// 矩形が未レイアウト（幅または高さが0以下）の場合は ok=false を返し、
// そのイベントは描画されません。外部へのエラーは発生させません。
func MapToNative(pos domain.Point, rect DisplayRect, nativeWidth, nativeHeight int) (domain.Point, bool) {
	if rect.Width <= 0 || rect.Height <= 0 {
		return domain.Point{}, false
	}
	return domain.Point{
		X: (pos.X - rect.Left) * (float64(nativeWidth) / rect.Width),
		Y: (pos.Y - rect.Top) * (float64(nativeHeight) / rect.Height),
	}, true
}
