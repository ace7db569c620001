package capacity

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkurganov/BSS-BookingService/internal/domain"
)

func hourStart(h int) time.Time {
	return time.Date(2025, 10, 15, h, 0, 0, 0, time.UTC)
}

func TestBuildSlotsForWindow_InvalidInput(t *testing.T) {
	start := hourStart(9)

	_, err := BuildSlotsForWindow(-1, start, 24)
	assert.ErrorIs(t, err, ErrInvalidCapacity)

	_, err = BuildSlotsForWindow(math.NaN(), start, 24)
	assert.ErrorIs(t, err, ErrInvalidCapacity)

	_, err = BuildSlotsForWindow(2.5, start, 0)
	assert.ErrorIs(t, err, ErrInvalidHours)

	_, err = BuildSlotsForWindow(2.5, start, -3)
	assert.ErrorIs(t, err, ErrInvalidHours)
}

func TestBuildSlotsForWindow_FractionalCapacityTwoHours(t *testing.T) {
	// 2.5 в час: первый час floor(2.5)=2 с остатком 0.5,
	// второй час floor(2.5+0.5)=3 без остатка
	slots, err := BuildSlotsForWindow(2.5, hourStart(9), 2)
	require.NoError(t, err)
	require.Len(t, slots, 8)

	// Час с C=2: floor(2/4)=0, первые 2 слота получают +1
	assert.Equal(t, []int{1, 1, 0, 0}, capacities(slots[:4]))
	// Час с C=3: [1,1,1,0]
	assert.Equal(t, []int{1, 1, 1, 0}, capacities(slots[4:]))
}

func TestBuildSlotsForWindow_QuarterSplitWithinHour(t *testing.T) {
	cases := []struct {
		hourCapacity float64
		expected     []int
	}{
		{0, []int{0, 0, 0, 0}},
		{1, []int{1, 0, 0, 0}},
		{2, []int{1, 1, 0, 0}},
		{3, []int{1, 1, 1, 0}},
		{4, []int{1, 1, 1, 1}},
		{5, []int{2, 1, 1, 1}},
		{7, []int{2, 2, 2, 1}},
		{8, []int{2, 2, 2, 2}},
	}

	for _, tc := range cases {
		slots, err := BuildSlotsForWindow(tc.hourCapacity, hourStart(10), 1)
		require.NoError(t, err)
		require.Len(t, slots, 4)
		assert.Equal(t, tc.expected, capacities(slots), "hourCapacity=%v", tc.hourCapacity)
	}
}

func TestBuildSlotsForWindow_CumulativeFairness(t *testing.T) {
	// На любой границе часа накопленная целая емкость отличается от
	// hourlyCapacity * прошедшие часы меньше чем на единицу
	for _, hourlyCapacity := range []float64{0.1, 0.3, 1.7, 2.5, 3.33, 5.75} {
		slots, err := BuildSlotsForWindow(hourlyCapacity, hourStart(0), 24)
		require.NoError(t, err)
		require.Len(t, slots, 96)

		total := 0
		for h := 0; h < 24; h++ {
			for q := 0; q < 4; q++ {
				total += slots[h*4+q].MaxCapacity
			}
			ideal := hourlyCapacity * float64(h+1)
			assert.Less(t, math.Abs(ideal-float64(total)), 1.0,
				"capacity=%v hour=%d", hourlyCapacity, h)
		}
	}
}

func TestBuildSlotsForWindow_QuarterSumEqualsHourCapacity(t *testing.T) {
	slots, err := BuildSlotsForWindow(3.7, hourStart(0), 24)
	require.NoError(t, err)

	remainder := 0.0
	for h := 0; h < 24; h++ {
		desired := 3.7 + remainder
		hourCapacity := int(math.Floor(desired))
		remainder = desired - float64(hourCapacity)

		sum := 0
		for q := 0; q < 4; q++ {
			sum += slots[h*4+q].MaxCapacity
		}
		assert.Equal(t, hourCapacity, sum, "hour=%d", h)
	}
}

func TestBuildSlotsForWindow_ClipsPartialFirstHour(t *testing.T) {
	// Окно начинается в 09:15: слот 09:00-09:15 отбрасывается,
	// 09:15-09:30 остается
	windowStart := time.Date(2025, 10, 15, 9, 15, 0, 0, time.UTC)

	slots, err := BuildSlotsForWindow(4, windowStart, 24)
	require.NoError(t, err)
	require.Len(t, slots, 95)

	assert.Equal(t, windowStart, slots[0].StartUTC)
	assert.Equal(t, windowStart.Add(15*time.Minute), slots[0].EndUTC)

	// Последний слот - конец 24-часового отрезка от начала часа
	last := slots[len(slots)-1]
	assert.Equal(t, time.Date(2025, 10, 16, 8, 45, 0, 0, time.UTC), last.StartUTC)
}

func TestBuildSlotsForWindow_ChronologicalAndAligned(t *testing.T) {
	slots, err := BuildSlotsForWindow(2.5, time.Date(2025, 10, 15, 9, 30, 0, 0, time.UTC), 24)
	require.NoError(t, err)

	for i, slot := range slots {
		assert.Equal(t, slot.StartUTC.Add(15*time.Minute), slot.EndUTC)
		assert.Zero(t, slot.StartUTC.Minute()%15)
		if i > 0 {
			assert.True(t, slots[i-1].StartUTC.Before(slot.StartUTC))
		}
	}
}

func TestBuildSlotsForWindow_Deterministic(t *testing.T) {
	windowStart := time.Date(2025, 10, 15, 9, 5, 0, 0, time.UTC)

	first, err := BuildSlotsForWindow(2.5, windowStart, 24)
	require.NoError(t, err)
	second, err := BuildSlotsForWindow(2.5, windowStart, 24)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestBuildSlotsForWindow_ZeroCapacity(t *testing.T) {
	slots, err := BuildSlotsForWindow(0, hourStart(9), 2)
	require.NoError(t, err)
	require.Len(t, slots, 8)
	for _, slot := range slots {
		assert.Zero(t, slot.MaxCapacity)
	}
}

func TestFindSlot(t *testing.T) {
	slots, err := BuildSlotsForWindow(4, hourStart(9), 1)
	require.NoError(t, err)

	found := FindSlot(slots, hourStart(9).Add(30*time.Minute))
	require.NotNil(t, found)
	assert.Equal(t, hourStart(9).Add(30*time.Minute), found.StartUTC)

	// Невыровненное время не совпадает ни с одной границей
	assert.Nil(t, FindSlot(slots, hourStart(9).Add(10*time.Minute)))
	assert.Nil(t, FindSlot(slots, hourStart(12)))
}

func capacities(slots []domain.Slot) []int {
	result := make([]int, len(slots))
	for i, slot := range slots {
		result[i] = slot.MaxCapacity
	}
	return result
}
