package telegram

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		seconds int64
		want    string
	}{
		{-5, "0s"},
		{0, "0s"},
		{45, "45s"},
		{60, "1m 0s"},
		{125, "2m 5s"},
		{3599, "59m 59s"},
		{3600, "1h 0m"},
		{3780, "1h 3m"},
		{7265, "2h 1m"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatDuration(tc.seconds), "seconds=%d", tc.seconds)
	}
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "0.50$", FormatMoney(decimal.RequireFromString("0.5"), "$"))
	assert.Equal(t, "10.00$", FormatMoney(decimal.NewFromInt(10), "$"))
	assert.Equal(t, "0.00€", FormatMoney(decimal.Zero, "€"))
}
