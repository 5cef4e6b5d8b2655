package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrequencyStep(t *testing.T) {
	cases := []struct {
		name string
		freq Frequency
		want int
	}{
		{"days passes interval through", Frequency{Kind: FrequencyDays, Interval: 3}, 3},
		{"weekly multiplies by 7", Frequency{Kind: FrequencyWeekly, Interval: 2}, 14},
		{"monthly multiplies by 30", Frequency{Kind: FrequencyMonthly, Interval: 2}, 60},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			step, err := tc.freq.Step()
			require.NoError(t, err)
			assert.Equal(t, tc.want, step)
		})
	}

	t.Run("zero interval rejected", func(t *testing.T) {
		_, err := Frequency{Kind: FrequencyDays, Interval: 0}.Step()
		assert.True(t, IsDomainError(err, ErrCodeInvalidFrequency))
	})

	t.Run("negative interval rejected", func(t *testing.T) {
		_, err := Frequency{Kind: FrequencyWeekly, Interval: -1}.Step()
		assert.True(t, IsDomainError(err, ErrCodeInvalidFrequency))
	})

	t.Run("unknown kind rejected", func(t *testing.T) {
		_, err := Frequency{Kind: "fortnightly", Interval: 1}.Step()
		assert.True(t, IsDomainError(err, ErrCodeInvalidFrequency))
	})
}

func TestTaskCategoryValid(t *testing.T) {
	assert.True(t, TaskCleaning.Valid())
	assert.True(t, TaskPractice.Valid())
	assert.False(t, TaskCategory("Polishing").Valid())
	assert.False(t, TaskCategory("").Valid())
}

func TestItemCategoryValid(t *testing.T) {
	assert.True(t, CategoryWoodwind.Valid())
	assert.True(t, CategoryStorageCase.Valid())
	assert.False(t, ItemCategory("Keyboard").Valid())
}

func TestParseDate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		d, err := ParseDate("2024-06-15")
		require.NoError(t, err)
		assert.Equal(t, date(2024, 6, 15), d)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := ParseDate("15/06/2024")
		assert.True(t, IsDomainError(err, ErrCodeInvalidDate))
	})

	t.Run("empty", func(t *testing.T) {
		_, err := ParseDate("")
		assert.True(t, IsDomainError(err, ErrCodeInvalidDate))
	})
}
