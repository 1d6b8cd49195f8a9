package service

import (
	"sort"

	"github.com/madDev-12/fitnutrition/internal/model"
)

// SortMeasurementsDesc orders newest first; equal dates keep id order
// descending so the latest entry wins.
func SortMeasurementsDesc(items []model.Measurement) []model.Measurement {
	out := make([]model.Measurement, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		di, dj := dateKey(out[i].Date), dateKey(out[j].Date)
		if di != dj {
			return di > dj
		}
		return out[i].ID > out[j].ID
	})
	return out
}

// AverageOrValue combines a left/right pair: the mean when both are present,
// otherwise whichever exists.
func AverageOrValue(left, right *model.Number) Metric {
	l, r := left.Float(), right.Float()
	switch {
	case l > 0 && r > 0:
		return Metric{Value: (l + r) / 2, OK: true}
	case l > 0:
		return Metric{Value: l, OK: true}
	case r > 0:
		return Metric{Value: r, OK: true}
	default:
		return Metric{}
	}
}

// MetricOf treats a missing or non-positive value as unavailable.
func MetricOf(n *model.Number) Metric {
	return available(n.Float())
}

// MeasurementRow is the display form of one measurement.
type MeasurementRow struct {
	ID      int64
	Date    string
	Weight  Metric
	BodyFat Metric
	Chest   Metric
	Waist   Metric
	Hips    Metric
	Arms    Metric
	Thighs  Metric
	Calves  Metric
}

func NewMeasurementRow(m model.Measurement) MeasurementRow {
	return MeasurementRow{
		ID:      m.ID,
		Date:    dateKey(m.Date),
		Weight:  MetricOf(m.Weight),
		BodyFat: MetricOf(m.BodyFatPercentage),
		Chest:   MetricOf(m.Chest),
		Waist:   MetricOf(m.Waist),
		Hips:    MetricOf(m.Hips),
		Arms:    AverageOrValue(m.ArmsLeft, m.ArmsRight),
		Thighs:  AverageOrValue(m.ThighsLeft, m.ThighsRight),
		Calves:  AverageOrValue(m.CalvesLeft, m.CalvesRight),
	}
}
