package renderer

import (
	"errors"
	"fmt"
	"io"

	"github.com/etnz/holdings"
	"github.com/wcharczuk/go-chart/v2"
)

// ErrNothingToDraw is returned when there is no bucket to chart.
var ErrNothingToDraw = errors.New("nothing to draw")

// DonutPNG draws the concentration buckets as a donut chart in PNG.
func DonutPNG(buckets []holdings.Bucket, w io.Writer) error {
	if len(buckets) == 0 {
		return ErrNothingToDraw
	}
	values := make([]chart.Value, 0, len(buckets))
	for _, b := range buckets {
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s %s", b.Label, b.Share),
			Value: b.Value.AsFloat(),
		})
	}

	donut := chart.DonutChart{
		Title:  "Concentration",
		Width:  512,
		Height: 512,
		Values: values,
	}
	if err := donut.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("chart render failed: %w", err)
	}
	return nil
}
