package inventory

import (
	"errors"
	"fmt"
	"iter"
	"slices"

	"github.com/shopspring/decimal"
	"github.com/vcmdu/Stock-master/internal/domain"
	"github.com/vcmdu/Stock-master/internal/domain/entity"
)

// ErrBucketsOutOfOrder los cortes de la serie deben venir en orden cronológico.
var ErrBucketsOutOfOrder = errors.New("los cortes de la serie deben estar en orden cronológico")

// TimeBucket corte de la serie: incluye todo movimiento con fecha <= End.
type TimeBucket struct {
	Label string
	End   entity.Date
}

// SeriesPoint valor del inventario al cierre de un corte.
type SeriesPoint struct {
	Label      string          `json:"label"`
	Date       entity.Date     `json:"date"`
	TotalValue decimal.Decimal `json:"totalValue"`
}

type replayStep struct {
	date      entity.Date
	productID entity.ID
	delta     decimal.Decimal
}

// ValueSeries reconstruye el valor del inventario en cada corte reproduciendo el libro.
// La valoración usa el precio de compra actual de cada producto, no el vigente en la fecha.
// Los movimientos de productos eliminados se reproducen pero no suman valor.
// La secuencia devuelta es perezosa y reiniciable: cada recorrido vuelve a reproducir desde cero
// sobre una copia tomada al llamar, así que no depende de cambios posteriores del catálogo.
func ValueSeries(products []*entity.Product, txs []*entity.Transaction, buckets []TimeBucket) (iter.Seq[SeriesPoint], error) {
	for i := 1; i < len(buckets); i++ {
		if buckets[i].End.Before(buckets[i-1].End) {
			return nil, fmt.Errorf("%w: %s antes de %s", ErrBucketsOutOfOrder, buckets[i].End, buckets[i-1].End)
		}
	}

	prices := make(map[entity.ID]decimal.Decimal, len(products))
	order := make([]entity.ID, 0, len(products))
	for _, p := range products {
		if _, dup := prices[p.ID]; !dup {
			order = append(order, p.ID)
		}
		prices[p.ID] = p.BuyPrice
	}

	steps := make([]replayStep, 0, len(txs))
	for _, t := range txs {
		steps = append(steps, replayStep{date: t.Date, productID: t.ProductID, delta: t.SignedQuantity()})
	}
	// estable: en el mismo día se respeta el orden de registro
	slices.SortStableFunc(steps, func(a, b replayStep) int {
		return a.date.Time().Compare(b.date.Time())
	})

	cuts := slices.Clone(buckets)

	return func(yield func(SeriesPoint) bool) {
		running := make(map[entity.ID]decimal.Decimal, len(order))
		for _, id := range order {
			running[id] = decimal.Zero
		}
		next := 0
		for _, b := range cuts {
			for next < len(steps) && !steps[next].date.After(b.End) {
				s := steps[next]
				running[s.productID] = running[s.productID].Add(s.delta)
				next++
			}
			total := decimal.Zero
			for _, id := range order {
				total = total.Add(running[id].Mul(prices[id]))
			}
			if !yield(SeriesPoint{Label: b.Label, Date: b.End, TotalValue: total}) {
				return
			}
		}
	}, nil
}

// Granularity tamaño de cada corte generado por BuildBuckets.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

// MaxBuckets límite de cortes por serie.
const MaxBuckets = 1000

// ParseGranularity acepta day, week y month. Vacío equivale a month.
func ParseGranularity(s string) (Granularity, error) {
	switch Granularity(s) {
	case "":
		return GranularityMonth, nil
	case GranularityDay, GranularityWeek, GranularityMonth:
		return Granularity(s), nil
	}
	return "", fmt.Errorf("%w: granularidad %q (use day, week o month)", domain.ErrInvalidInput, s)
}

// BuildBuckets genera los cortes entre from y to (inclusive). Cada corte cierra al final de su
// periodo; el último se recorta a to.
func BuildBuckets(from, to entity.Date, g Granularity) ([]TimeBucket, error) {
	if from.IsZero() || to.IsZero() {
		return nil, fmt.Errorf("%w: el rango de fechas es obligatorio", domain.ErrInvalidInput)
	}
	if to.Before(from) {
		return nil, fmt.Errorf("%w: la fecha final es anterior a la inicial", domain.ErrInvalidInput)
	}

	var buckets []TimeBucket
	start := from
	for !start.After(to) {
		var end entity.Date
		var label string
		switch g {
		case GranularityDay:
			end = start
			label = start.String()
		case GranularityWeek:
			end = start.AddDays(6)
			label = start.String()
		case GranularityMonth:
			first := entity.NewDate(start.Time().Year(), start.Time().Month(), 1)
			end = first.AddMonths(1).AddDays(-1)
			label = start.Time().Format("2006-01")
		default:
			return nil, fmt.Errorf("%w: granularidad %q", domain.ErrInvalidInput, g)
		}
		if end.After(to) {
			end = to
		}
		buckets = append(buckets, TimeBucket{Label: label, End: end})
		if len(buckets) > MaxBuckets {
			return nil, fmt.Errorf("%w: el rango genera más de %d cortes", domain.ErrInvalidInput, MaxBuckets)
		}
		start = end.AddDays(1)
	}
	return buckets, nil
}
