package handler

import "time"

// Отображение времени в интерфейсе: хранение в UTC, показ по Москве
var moscowTZ = time.FixedZone("MSK", 3*60*60)

// FormatDateTimeDisplay форматирует момент времени для списков:
// сегодня — только часы, вчера — с пометкой, иначе полная дата
func FormatDateTimeDisplay(t time.Time) string {
	return formatDateTimeAt(t, time.Now())
}

func formatDateTimeAt(t, now time.Time) string {
	local := t.In(moscowTZ)
	nowLocal := now.In(moscowTZ)

	y1, m1, d1 := local.Date()
	y2, m2, d2 := nowLocal.Date()
	if y1 == y2 && m1 == m2 && d1 == d2 {
		return local.Format("15:04")
	}

	yesterday := nowLocal.AddDate(0, 0, -1)
	y3, m3, d3 := yesterday.Date()
	if y1 == y3 && m1 == m3 && d1 == d3 {
		return "Вчера " + local.Format("15:04")
	}

	return local.Format("02.01.2006 15:04")
}

// FormatDateDisplay переводит ISO-дату (ГГГГ-ММ-ДД) в отображаемый вид ДД.ММ.ГГГГ
func FormatDateDisplay(dateStr string) string {
	if dateStr == "" {
		return ""
	}
	d, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return dateStr
	}
	return d.Format("02.01.2006")
}
