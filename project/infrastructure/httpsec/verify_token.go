package httpsec

import "crypto/hmac"

// VerifyVerificationToken は設定済みの検証トークンと受信トークンを比較します。
// タイミング攻撃対策として定時間比較を使用します
func VerifyVerificationToken(expected, actual string) bool {
	if expected == "" || actual == "" {
		return false
	}
	return hmac.Equal([]byte(expected), []byte(actual))
}
