package domain

import "time"

// jst は固定 UTC+9:00 オフセットです。サマータイムは考慮しません
var jst = time.FixedZone("JST", 9*60*60)

// DateMonth はUnix秒から JST の日付("2006-01-02")と月("2006-01")を導出します
func DateMonth(timestamp int64) (date string, month string) {
	local := time.Unix(timestamp, 0).In(jst)
	return local.Format("2006-01-02"), local.Format("2006-01")
}

// PreviousBusinessDay は前営業日（JST）を "2006-01-02" 形式で返します。
// 月曜は3日前（金曜）、それ以外は1日前です
func PreviousBusinessDay(now time.Time) string {
	local := now.In(jst)
	days := 1
	if local.Weekday() == time.Monday {
		days = 3
	}
	return local.AddDate(0, 0, -days).Format("2006-01-02")
}
