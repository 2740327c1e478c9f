package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMultiline(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{
			name:  "empty",
			value: "",
			want:  "",
		},
		{
			name:  "plain newlines kept",
			value: "ほっこり銀行 本店\n普通 1234567\n口座名義 NPO法人ほっこり",
			want:  "ほっこり銀行 本店\n普通 1234567\n口座名義 NPO法人ほっこり",
		},
		{
			name:  "escaped newlines",
			value: `ほっこり銀行 本店\n普通 1234567\n口座名義 NPO法人ほっこり`,
			want:  "ほっこり銀行 本店\n普通 1234567\n口座名義 NPO法人ほっこり",
		},
		{
			name:  "escaped crlf",
			value: `ほっこり銀行 本店\r\n普通 1234567`,
			want:  "ほっこり銀行 本店\n普通 1234567",
		},
		{
			name:  "yen sign escape",
			value: "ほっこり銀行 本店¥n普通 1234567",
			want:  "ほっこり銀行 本店\n普通 1234567",
		},
		{
			name:  "missing backslash fallback",
			value: "ほっこり銀行 本店n普通 1234567n口座名義 NPO法人ほっこり",
			want:  "ほっこり銀行 本店\n普通 1234567\n口座名義 NPO法人ほっこり",
		},
		{
			name:  "surrounding whitespace trimmed",
			value: "  振込先情報  ",
			want:  "振込先情報",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseMultiline(tt.value))
		})
	}
}
