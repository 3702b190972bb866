package handler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFormatDateTimeAt(t *testing.T) {
	// 15 июня 2026, 18:00 по Москве
	now := time.Date(2026, 6, 15, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{
			name: "сегодня — только время",
			t:    time.Date(2026, 6, 15, 9, 30, 0, 0, time.UTC),
			want: "12:30",
		},
		{
			name: "вчера — с пометкой",
			t:    time.Date(2026, 6, 14, 9, 5, 0, 0, time.UTC),
			want: "Вчера 12:05",
		},
		{
			name: "раньше — полная дата",
			t:    time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC),
			want: "01.06.2026 12:00",
		},
		{
			name: "граница суток: 22:30 UTC это уже завтра по Москве",
			t:    time.Date(2026, 6, 14, 22, 30, 0, 0, time.UTC),
			want: "01:30",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, formatDateTimeAt(tc.t, now))
		})
	}
}

func TestFormatDateDisplay(t *testing.T) {
	require.Equal(t, "31.12.2026", FormatDateDisplay("2026-12-31"))
	require.Equal(t, "", FormatDateDisplay(""))
	// Неразборчивое значение возвращается как есть
	require.Equal(t, "31/12/2026", FormatDateDisplay("31/12/2026"))
}
