package generator

import (
	"errors"

	"google.golang.org/genai"
)

// ErrGenerationInFlight は生成の実行中に新しい生成が要求されたことを示します。
// 実行中の生成が完了すれば再試行できます。
var ErrGenerationInFlight = errors.New("画像生成が実行中です。完了後に再試行してください")

// Request は生成サービスへ渡す1回分の要求です。Parts は画像パーツ（0個以上）の
// 後ろに必ずテキストパーツが1つ続く順序付きリストで、構築後は変更しません。
type Request struct {
	Parts  []*genai.Part
	Config *genai.GenerateContentConfig
}
