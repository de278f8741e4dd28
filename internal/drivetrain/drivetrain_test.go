package drivetrain

import (
	"math"
	"reflect"
	"testing"
)

func TestFromNumbers_SortsAndValidates(t *testing.T) {
	d, err := FromNumbers([]int{44, 30}, []int{15, 11, 13}, 700, 20)
	if err != nil {
		t.Fatalf("FromNumbers: %v", err)
	}

	if got, want := d.Chainring().Cogs(), []int{30, 44}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Chainring() = %v, want %v", got, want)
	}
	if got, want := d.Cassette().Cogs(), []int{11, 13, 15}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Cassette() = %v, want %v", got, want)
	}
	if got := d.Wheel().DiameterMM(); !almostEqual(got, 740) {
		t.Fatalf("Wheel().DiameterMM() = %g, want 740", got)
	}
}

func TestFromNumbers_PropagatesInvalidInput(t *testing.T) {
	cases := []struct {
		name      string
		chainring []int
		cassette  []int
		diameter  float64
	}{
		{"empty chainring", nil, []int{11}, 700},
		{"empty cassette", []int{40}, nil, 700},
		{"bad wheel", []int{40}, []int{11}, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := FromNumbers(tc.chainring, tc.cassette, tc.diameter, 20); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestDrivetrain_RatioIdempotent(t *testing.T) {
	d, err := FromNumbers([]int{30, 40}, []int{11, 13, 15}, 700, 20)
	if err != nil {
		t.Fatalf("FromNumbers: %v", err)
	}

	first := d.Ratio()
	second := d.Ratio()

	if !reflect.DeepEqual(first, second) {
		t.Fatal("Ratio() returned different tables across calls")
	}

	// Mutating the returned table must not poison the cache.
	first[0].Ratio = -1
	if third := d.Ratio(); third[0].Ratio == -1 {
		t.Fatal("mutating a returned table changed the cached table")
	}
}

func TestDrivetrain_UnfoldingUsesWheelPerimeter(t *testing.T) {
	d, err := FromNumbers([]int{40}, []int{11, 13}, 700, 20)
	if err != nil {
		t.Fatalf("FromNumbers: %v", err)
	}

	unfolding := d.Unfolding()
	perimeter := d.Wheel().PerimeterMM()
	for i, u := range unfolding {
		want := u.Ratio * perimeter / 1000
		if !almostEqual(u.UnfoldingM, want) {
			t.Fatalf("unfolding[%d] = %g, want %g", i, u.UnfoldingM, want)
		}
	}
}

// End-to-end numbers from the reference configuration:
// chainring [40], cassette [11, 13], 700 mm wheel, 20 mm tyre offset.
func TestDrivetrain_EndToEndExample(t *testing.T) {
	d, err := FromNumbers([]int{40}, []int{11, 13}, 700, 20)
	if err != nil {
		t.Fatalf("FromNumbers: %v", err)
	}

	if got := d.Wheel().DiameterMM(); !almostEqual(got, 740) {
		t.Fatalf("effective diameter = %g, want 740", got)
	}
	if got, want := d.Wheel().PerimeterMM(), 740*math.Pi; !almostEqual(got, want) {
		t.Fatalf("perimeter = %g, want %g", got, want)
	}

	cadence, err := NewCadence(90)
	if err != nil {
		t.Fatalf("NewCadence: %v", err)
	}
	rows := d.Speed(cadence)
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}

	const tolerance = 0.01
	wantSpeeds := []float64{45.66, 38.63} // cassette ascending: 11 then 13
	for i, row := range rows {
		band, ok := row.BandAt(BandMiddle)
		if !ok {
			t.Fatalf("rows[%d] missing middle band", i)
		}
		if math.Abs(band.SpeedKMH-wantSpeeds[i]) > tolerance {
			t.Fatalf("rows[%d] speed = %g km/h, want %g±%g", i, band.SpeedKMH, wantSpeeds[i], tolerance)
		}
	}
}

func TestDrivetrain_SpeedReusesUnfolding(t *testing.T) {
	d, err := FromNumbers([]int{40}, []int{11}, 700, 20)
	if err != nil {
		t.Fatalf("FromNumbers: %v", err)
	}

	c1, _ := NewCadence(60)
	c2, _ := NewCadence(120)

	slow := d.Speed(c1)[0]
	fast := d.Speed(c2)[0]

	if !almostEqual(slow.UnfoldingM, fast.UnfoldingM) {
		t.Fatalf("unfolding differs between cadence calls: %g vs %g", slow.UnfoldingM, fast.UnfoldingM)
	}
	if !almostEqual(fast.Bands[0].SpeedKMH, 2*slow.Bands[0].SpeedKMH) {
		t.Fatalf("doubling cadence did not double speed: %g vs %g", fast.Bands[0].SpeedKMH, slow.Bands[0].SpeedKMH)
	}
}
