package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Weekday
		wantErr bool
	}{
		{input: "Monday", want: time.Monday},
		{input: "lundi", want: time.Monday},
		{input: "MARDI", want: time.Tuesday},
		{input: "Wednesday", want: time.Wednesday},
		{input: "mercredi", want: time.Wednesday},
		{input: "jeudi", want: time.Thursday},
		{input: "Friday", want: time.Friday},
		{input: "vendredi", want: time.Friday},
		{input: "Samedi", want: time.Saturday},
		{input: "  dimanche  ", want: time.Sunday},
		{input: "Sunday", want: time.Sunday},
		{input: "funday", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseWeekday(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseWeekdays(t *testing.T) {
	days, rejected := ParseWeekdays("Monday, Mardi,mercredi,Nonsenseday, ,Monday")
	assert.Equal(t, []time.Weekday{time.Monday, time.Tuesday, time.Wednesday}, days)
	assert.Equal(t, []string{"Nonsenseday"}, rejected)
}

func TestParseWeekdaysEmpty(t *testing.T) {
	days, rejected := ParseWeekdays("")
	assert.Empty(t, days)
	assert.Empty(t, rejected)
}
