package rotate

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-geomag/coords"
)

func TestSeriesMatchesMatrix(t *testing.T) {
	times := []float64{0, 0.25, 100.5, 365.75}

	bases, err := NewBaseSeries(times, coords.FrameGSM, coords.DefaultDipole)
	if err != nil {
		t.Fatal(err)
	}

	series, err := Series(2, 2, bases, SeriesConfig{Workers: 3})
	if err != nil {
		t.Fatal(err)
	}
	if len(series) != len(times) {
		t.Fatalf("got %d matrices, want %d", len(series), len(times))
	}

	for i := range times {
		want, err := Matrix(2, 2, bases.B1[i], bases.B2[i], bases.B3[i])
		if err != nil {
			t.Fatal(err)
		}
		for k, v := range series[i].Data {
			if math.Abs(v-want.Data[k]) > 1e-14 {
				t.Fatalf("instant %d: element %d is %v, want %v", i, k, v, want.Data[k])
			}
		}
	}
}

func TestSeriesShapeMismatch(t *testing.T) {
	bases := BaseSeries{
		B1: make([]coords.Vec3, 3),
		B2: make([]coords.Vec3, 2),
		B3: make([]coords.Vec3, 3),
	}

	if _, err := Series(1, 1, bases, SeriesConfig{}); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("err = %v, want ErrShapeMismatch", err)
	}
}

func TestSeriesEmpty(t *testing.T) {
	series, err := Series(1, 1, BaseSeries{}, SeriesConfig{})
	if err != nil {
		t.Fatal(err)
	}
	if len(series) != 0 {
		t.Errorf("got %d matrices, want 0", len(series))
	}
}

func TestNewBaseSeriesTimeRange(t *testing.T) {
	if _, err := NewBaseSeries([]float64{1e6}, coords.FrameGSM, coords.DefaultDipole); err == nil {
		t.Error("expected error for out-of-range time")
	}
}
