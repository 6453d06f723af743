package dotenv

import "strings"

// Validate 检查 keys 是否都已设置，缺失或仅含空白的 key 记录为 RequiredKeysNotPresent。
func Validate(s Store, keys ...string) *Result {
	res := newResult(s)
	for _, key := range keys {
		if v, ok := s.Lookup(key); !ok || strings.TrimSpace(v) == "" {
			res.add(&Issue{Kind: RequiredKeysNotPresent, Actual: key})
		}
	}

	return res
}

// RequireKeys 同 Validate，有缺失时返回 *AggregateError。
func RequireKeys(s Store, keys ...string) error {
	return Validate(s, keys...).Err()
}
