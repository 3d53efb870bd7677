// Package extract turns raw workbook cell blocks into domain records. Every
// mapper tolerates malformed cells by skipping them; only a missing sheet is
// reported as an error.
package extract

// Origin records where a dataset came from so consumers can surface a
// sample-data notice when the workbook was unavailable.
type Origin int

const (
	OriginWorkbook Origin = iota
	OriginFallback
)

func (o Origin) Label() string {
	if o == OriginFallback {
		return "Sample Data"
	}
	return "Excel Real Data"
}

// Tagged pairs a dataset with its provenance.
type Tagged[T any] struct {
	Data   T
	Origin Origin
}

func FromWorkbook[T any](data T) Tagged[T] {
	return Tagged[T]{Data: data, Origin: OriginWorkbook}
}

func FromFallback[T any](data T) Tagged[T] {
	return Tagged[T]{Data: data, Origin: OriginFallback}
}
