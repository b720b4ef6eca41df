// Package temperature converts a batch of Fahrenheit readings to Celsius
// with a pool of workers.
package temperature

import (
	"math/rand/v2"

	"github.com/exascience/parpatterns/internal/report"
	"github.com/exascience/parpatterns/parallel"
)

// Bounds of the readings produced by Random.
const (
	MinFahrenheit = 32.0
	MaxFahrenheit = 100.0
)

// ToCelsius converts a temperature from Fahrenheit to Celsius.
func ToCelsius(fahrenheit float64) float64 {
	return (fahrenheit - 32) * (5.0 / 9.0)
}

// Random returns n readings drawn uniformly from [MinFahrenheit, MaxFahrenheit).
func Random(n int, rng *rand.Rand) []float64 {
	temps := make([]float64, n)
	for i := range temps {
		temps[i] = MinFahrenheit + rng.Float64()*(MaxFahrenheit-MinFahrenheit)
	}
	return temps
}

// Convert applies ToCelsius to each reading in parallel. The result at
// index i is the conversion of temps[i].
func Convert(workers int, temps []float64) ([]float64, error) {
	return parallel.Map(workers, temps, func(f float64) (float64, error) {
		return ToCelsius(f), nil
	})
}

// Run converts temps and reports one line per reading.
func Run(workers int, temps []float64, r *report.Reporter) error {
	converted, err := Convert(workers, temps)
	if err != nil {
		return err
	}
	for i, f := range temps {
		r.Line("%.1f Fahrenheit is the same as %.1f Celsius.", f, converted[i])
	}
	return nil
}
