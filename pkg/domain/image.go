package domain

import (
	"encoding/base64"
	"fmt"
)

// ImageBuffer は固定のネイティブ寸法を持つエンコード済み画像データです。
// 原点は左上で、構築後は変更しません。ソース（編集対象）、マスク
// （編集領域、寸法はソースと一致）、参照（画風・内容の手本、寸法は独立）の
// 3つの役割で使われますが、役割は保持する側が決めます。
type ImageBuffer struct {
	Data     []byte
	MIMEType string
	Width    int
	Height   int
}

// DataURI は画像をそのまま表示に使える data: URI 形式で返します。
func (b *ImageBuffer) DataURI() string {
	return fmt.Sprintf("data:%s;base64,%s", b.MIMEType, base64.StdEncoding.EncodeToString(b.Data))
}
