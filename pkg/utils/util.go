package utils

// DereferenceSeed は、int64のポインタを安全にデリファレンスします。
// ポインタがnilの場合は0を返します。
func DereferenceSeed(seed *int64) int64 {
	if seed == nil {
		return 0
	}
	return *seed
}

// SeedToPtrInt32 はドメインの *int64 を Gemini SDK 用の *int32 に変換します。
// int32 の範囲を超える値は上位ビットが切り捨てられますが、シード値の
// 再現性においては期待どおりの挙動です。
func SeedToPtrInt32(seed *int64) *int32 {
	if seed == nil {
		return nil
	}
	val := int32(*seed)
	return &val
}
