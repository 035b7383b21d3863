// Package prompt は構造化された生成設定を、モデルへ送る英語の指示文へ
// 決定論的に変換します。句の並び順は固定で、同じ入力は常に同じ文字列になります。
package prompt

import (
	"strings"

	"github.com/shouni/gemini-edit-kit/pkg/domain"
)

// Inputs は要求に含まれる画像の有無です。編集コンテキストの指示文は
// ここから選択されます。値は Request Assembler の並び順（ソース → マスク →
// 参照 → テキスト）と対の不変条件です: 並びを変える場合は instructionClause の
// 「最後の画像」等の位置参照も必ず併せて更新してください。
type Inputs struct {
	HasSource    bool
	HasMask      bool
	HasReference bool
}

// clauseBuilder は指示文の1句を組み立てます。空文字列を返した句は省略されます。
type clauseBuilder func(in Inputs, s domain.GenerationSettings) string

// builders は句の固定順序です:
// 編集コンテキスト → 本文プロンプト → 視点 → 時間帯 → 季節 → 画風。
var builders = []clauseBuilder{
	instructionClause,
	promptClause,
	viewpointClause,
	timeOfDayClause,
	seasonClause,
	artStyleClause,
}

// Build は設定を指示文へ変換する純粋関数です。選択されていない項目は
// 句ごと省かれ、プレースホルダーは出力しません。
func Build(in Inputs, s domain.GenerationSettings) string {
	clauses := make([]string, 0, len(builders))
	for _, b := range builders {
		if c := b(in, s); c != "" {
			clauses = append(clauses, c)
		}
	}
	return strings.Join(clauses, "\n")
}

// instructionClause は画像の有無の組み合わせから編集コンテキストを組み立てます。
// どの画像もない場合は空（純粋なテキスト生成）です。
func instructionClause(in Inputs, _ domain.GenerationSettings) string {
	var lines []string

	switch {
	case in.HasSource && in.HasMask:
		lines = append(lines, "Edit the first image according to the second image, which is a mask: the white area marks the region to change and the black area marks the region to preserve.")
	case in.HasSource:
		lines = append(lines, "Edit the provided image.")
	}

	switch {
	case in.HasReference && in.HasSource:
		// 参照画像は常に末尾に積まれるため「最後の画像」で指す。
		lines = append(lines, "The last image is a strict style and content reference.")
	case in.HasReference:
		lines = append(lines, "The provided image is a visual reference.")
	}

	return strings.Join(lines, "\n")
}

func promptClause(_ Inputs, s domain.GenerationSettings) string {
	return strings.TrimSpace(s.Prompt)
}

// viewpointClause は選択順を保ったまま視点名を " + " で連結します。
// RotationObject では被写体のみを回し、環境を維持する制約を明示します。
// RotationCamera ではカメラ配置として表現し、環境への制約は付けません。
func viewpointClause(_ Inputs, s domain.GenerationSettings) string {
	if len(s.Viewpoints) == 0 {
		return ""
	}

	labels := make([]string, 0, len(s.Viewpoints))
	for _, v := range s.Viewpoints {
		labels = append(labels, string(v))
	}
	joined := strings.Join(labels, " + ")

	if s.RotationMode == domain.RotationObject {
		return "Rotate only the subject to show it from: " + joined + ". Keep the environment, background, and lighting exactly the same."
	}
	return "Render the scene from the following camera angles: " + joined + "."
}

func timeOfDayClause(_ Inputs, s domain.GenerationSettings) string {
	if s.TimeOfDay == "" {
		return ""
	}
	return "Time of day: " + s.TimeOfDay + "."
}

func seasonClause(_ Inputs, s domain.GenerationSettings) string {
	if s.Season == "" {
		return ""
	}
	return "Season: " + s.Season + "."
}

func artStyleClause(_ Inputs, s domain.GenerationSettings) string {
	if s.ArtStyle == "" {
		return ""
	}
	return "Art style: " + s.ArtStyle + "."
}
