package domain

// FailureKind は生成失敗の分類です。
type FailureKind int

const (
	// FailureSafetyBlocked はサービスが候補を1つも返さなかった状態です。
	// プロンプトや画像を変更すれば再試行できます。
	FailureSafetyBlocked FailureKind = iota
	// FailureNoImage は応答がテキストのみで画像を含まなかった状態です。
	FailureNoImage
	// FailurePermissionDenied は認証情報が無効または権限不足の状態です。
	FailurePermissionDenied
	// FailureQuotaExceeded はレート制限や使用量上限に達した状態です。
	FailureQuotaExceeded
	// FailureUnknown は上記以外の失敗です。メッセージは原文のまま保持します。
	FailureUnknown
)

// GenerationFailure は分類済みの生成失敗です。Remediation は
// そのまま利用者に提示できる対処方法を保持します。
type GenerationFailure struct {
	Kind        FailureKind
	Message     string
	Remediation string
}

func (f *GenerationFailure) Error() string {
	if f.Message == "" {
		return f.Remediation
	}
	return f.Message
}

// NewFailure は分類に応じた対処メッセージ付きの GenerationFailure を作成します。
func NewFailure(kind FailureKind, message string) *GenerationFailure {
	return &GenerationFailure{
		Kind:        kind,
		Message:     message,
		Remediation: remediationFor(kind),
	}
}

func remediationFor(kind FailureKind) string {
	switch kind {
	case FailureSafetyBlocked:
		return "安全フィルターにより生成がブロックされました。プロンプトや画像を変更して再試行してください。"
	case FailureNoImage:
		return "画像が返されませんでした。プロンプトを調整して再試行してください。"
	case FailurePermissionDenied:
		return "APIキーに必要な権限がありません。認証情報を確認してください。"
	case FailureQuotaExceeded:
		return "利用上限に達しました。しばらく待ってから再試行してください。"
	default:
		return "不明なエラーが発生しました。時間をおいて再試行してください。"
	}
}

// GenerationResult は1回の生成アクションの結果です。成功時は Image が、
// 失敗時は Failure が設定されます（排他）。Response Interpreter が生成し、
// 呼び出し側が直ちに消費します。キャッシュはしません。
type GenerationResult struct {
	Image   *ImageBuffer
	Failure *GenerationFailure
}

// OK は結果が成功かどうかを返します。
func (r *GenerationResult) OK() bool {
	return r.Image != nil && r.Failure == nil
}
