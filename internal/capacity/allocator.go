package capacity

import (
	"math"
	"time"

	"github.com/dkurganov/BSS-BookingService/internal/domain"
	"github.com/dkurganov/BSS-BookingService/pkg/timeutil"
)

// hourBucket целочисленная емкость одного часа окна
type hourBucket struct {
	hourStart time.Time
	capacity  int
}

// buildHourlyCapacities распределяет дробную часовую емкость по целым часам
// алгоритмом переносимого остатка: остаток от каждого часа переносится в следующий,
// поэтому на любом отрезке из N часов суммарная целая емкость отличается от
// N * hourlyCapacity меньше чем на единицу. Остаток в начале окна всегда 0,
// что делает результат детерминированным для одинаковых входов
func buildHourlyCapacities(hourlyCapacity float64, startHourUTC time.Time, hours int) []hourBucket {
	buckets := make([]hourBucket, 0, hours)
	remainder := 0.0

	for i := 0; i < hours; i++ {
		desired := hourlyCapacity + remainder
		hourCapacity := int(math.Floor(desired))
		remainder = desired - float64(hourCapacity)

		buckets = append(buckets, hourBucket{
			hourStart: startHourUTC.Add(time.Duration(i) * time.Hour),
			capacity:  hourCapacity,
		})
	}

	return buckets
}

// distributeHourCapacity делит целую часовую емкость C на 4 четвертьчасовых слота:
// каждый получает floor(C/4), первые C mod 4 слота по хронологии получают +1
func distributeHourCapacity(hourCapacity int) [domain.SlotsPerHour]int {
	base := hourCapacity / domain.SlotsPerHour
	extra := hourCapacity % domain.SlotsPerHour

	var slots [domain.SlotsPerHour]int
	for i := 0; i < domain.SlotsPerHour; i++ {
		slots[i] = base
		if i < extra {
			slots[i]++
		}
	}

	return slots
}

// BuildSlotsForWindow строит таблицу 15-минутных слотов для окна в hours часов,
// начиная с начала часа, содержащего windowStartUTC. Слоты, заканчивающиеся
// не позже windowStartUTC, отбрасываются (частичный первый час).
// Чистая функция: одинаковые аргументы всегда дают одинаковый результат
func BuildSlotsForWindow(hourlyCapacity float64, windowStartUTC time.Time, hours int) ([]domain.Slot, error) {
	if hourlyCapacity < 0 || math.IsNaN(hourlyCapacity) || math.IsInf(hourlyCapacity, 0) {
		return nil, ErrInvalidCapacity
	}
	if hours <= 0 {
		return nil, ErrInvalidHours
	}

	windowStartUTC = windowStartUTC.UTC()
	startHour := timeutil.TruncateToHour(windowStartUTC)

	buckets := buildHourlyCapacities(hourlyCapacity, startHour, hours)

	slots := make([]domain.Slot, 0, hours*domain.SlotsPerHour)
	for _, bucket := range buckets {
		slotCapacities := distributeHourCapacity(bucket.capacity)

		for i := 0; i < domain.SlotsPerHour; i++ {
			slotStart := bucket.hourStart.Add(time.Duration(i) * domain.SlotDuration)
			slotEnd := slotStart.Add(domain.SlotDuration)

			// Слот из частичного первого часа, целиком оставшийся позади окна
			if !slotEnd.After(windowStartUTC) {
				continue
			}

			slots = append(slots, domain.Slot{
				StartUTC:    slotStart,
				EndUTC:      slotEnd,
				MaxCapacity: slotCapacities[i],
			})
		}
	}

	return slots, nil
}

// FindSlot ищет слот с точным временем начала в таблице слотов
// Возвращает nil, если начало не совпадает ни с одной границей -
// такой запрос означает невалидный слот для admission control
func FindSlot(slots []domain.Slot, startUTC time.Time) *domain.Slot {
	for i := range slots {
		if slots[i].StartUTC.Equal(startUTC) {
			return &slots[i]
		}
	}
	return nil
}
