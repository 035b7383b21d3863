package domain

// Viewpoint はユーザーが選択できる視点名です。値はそのまま英語の
// プロンプト文へ埋め込まれます。
type Viewpoint string

const (
	ViewpointFront     Viewpoint = "Front View"
	ViewpointBack      Viewpoint = "Back View"
	ViewpointLeftSide  Viewpoint = "Left Side View"
	ViewpointRightSide Viewpoint = "Right Side View"
	ViewpointTopDown   Viewpoint = "Top-Down View"
	ViewpointIsometric Viewpoint = "Isometric View"
)

// RotationMode は選択された視点がカメラ配置の指定か、被写体の向きの指定かを示します。
type RotationMode int

const (
	// RotationCamera は視点をカメラ位置として扱います。環境への制約は付けません。
	RotationCamera RotationMode = iota
	// RotationObject は被写体のみを回転させ、環境は維持するよう指示します。
	RotationObject
)

// 画像サイズのティアです。未指定（空文字列）はバックエンドに委ねます。
const (
	ImageSize1K = "1K"
	ImageSize2K = "2K"
	ImageSize4K = "4K"
)

// GenerationSettings は1回の生成要求に添える構造化パラメータです。
// Prompt 以外はすべて任意で、ゼロ値は「バックエンドに任せる」を意味します。
// Viewpoints は選択順を保持します（指示文の列挙順になるため）。
type GenerationSettings struct {
	Prompt       string
	ImageSize    string // "1K" | "2K" | "4K"
	AspectRatio  string // "1:1", "16:9" など
	Viewpoints   []Viewpoint
	RotationMode RotationMode
	TimeOfDay    string
	Season       string
	ArtStyle     string
	Seed         *int64 // nil でランダム、値指定で固定
}
