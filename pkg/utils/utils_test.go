package utils

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundWithTwoDecimalPlace(t *testing.T) {
	assert.Equal(t, 48.39, RoundWithTwoDecimalPlace(48.387096))
	assert.Equal(t, -300.0, RoundWithTwoDecimalPlace(-300))
	assert.Equal(t, 0.0, RoundWithTwoDecimalPlace(math.NaN()))
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "1500.00", FormatMoney(1500))
	assert.Equal(t, "-0.50", FormatMoney(-0.5))
	assert.Equal(t, "0.00", FormatMoney(math.Inf(1)))
}

func TestParseDate(t *testing.T) {
	date, err := ParseDate("")
	assert.NoError(t, err)
	assert.Nil(t, date)

	date, err = ParseDate("2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, 15, date.Day())

	_, err = ParseDate("15/03/2024")
	assert.Error(t, err)
}

func TestPreviousMonths(t *testing.T) {
	months := PreviousMonths(time.Date(2024, time.January, 20, 0, 0, 0, 0, time.UTC), 2)
	require.Len(t, months, 2)
	assert.Equal(t, time.Date(2023, time.December, 1, 0, 0, 0, 0, time.UTC), months[0])
	assert.Equal(t, time.Date(2023, time.November, 1, 0, 0, 0, 0, time.UTC), months[1])
}

func TestGenerateID(t *testing.T) {
	id, err := GenerateID()
	require.NoError(t, err)
	assert.Len(t, id, 12)
}
