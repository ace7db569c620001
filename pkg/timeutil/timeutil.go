package timeutil

import "time"

// CeilToNextQuarterHour округляет время вверх до ближайшей четверти часа (:00, :15, :30, :45)
// Секунды и наносекунды обнуляются до округления, поэтому 09:00:30 дает 09:00,
// а 09:01:00 дает 09:15. Время, уже стоящее на четверти часа, не меняется
func CeilToNextQuarterHour(t time.Time) time.Time {
	t = t.UTC()
	minuteOnly := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC)
	rem := minuteOnly.Minute() % 15
	if rem == 0 {
		return minuteOnly
	}
	return minuteOnly.Add(time.Duration(15-rem) * time.Minute)
}

// TruncateToHour обрезает время до начала содержащего его часа
func TruncateToHour(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, time.UTC)
}

// IsQuarterAligned проверяет, что время стоит ровно на границе четверти часа
func IsQuarterAligned(t time.Time) bool {
	t = t.UTC()
	return t.Minute()%15 == 0 && t.Second() == 0 && t.Nanosecond() == 0
}
