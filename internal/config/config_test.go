package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/velotools/gearrange-cli/internal/apperr"
)

func sampleConfigs() []DrivetrainConfig {
	offset := 25.0
	return []DrivetrainConfig{
		{
			Name:            "Commuter",
			Chainring:       []int{40},
			Cassette:        []int{11, 13, 15},
			WheelDiameterMM: 700,
			TyreOffsetMM:    &offset,
			CadenceRPM:      []int{85, 95},
		},
		{
			Name:            "Gravel",
			Chainring:       []int{30, 46},
			Cassette:        []int{10, 12, 14, 17, 21, 26, 32, 40},
			WheelDiameterMM: 650,
			CadenceRPM:      []int{90},
		},
	}
}

func TestWriteThenRead_RoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drivetrains.yaml")

	if err := Write(path, sampleConfigs()); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !reflect.DeepEqual(got, sampleConfigs()) {
		t.Fatalf("round trip mismatch:\ngot  %+v\nwant %+v", got, sampleConfigs())
	}
}

func TestReadWrite_RejectUnknownExtension(t *testing.T) {
	if _, err := Read("drivetrains.json"); err == nil {
		t.Fatal("Read accepted .json")
	}
	if err := Write("drivetrains.csv", sampleConfigs()); err == nil {
		t.Fatal("Write accepted .csv")
	}
}

func TestRead_EmptyDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(path, []byte("configurations: []\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := Read(path); err == nil {
		t.Fatal("Read accepted a file without configurations")
	}
}

func TestBuild_DefaultsTyreOffset(t *testing.T) {
	c := sampleConfigs()[1] // no tyre offset in the file
	d, cadence, err := c.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	// 650 nominal + 2×20 default offset.
	if got := d.Wheel().DiameterMM(); got != 690 {
		t.Fatalf("DiameterMM() = %g, want 690", got)
	}
	if cadence.IsRange() {
		t.Fatal("single cadence value built a range")
	}
}

func TestBuild_PropagatesInvalidInput(t *testing.T) {
	c := DrivetrainConfig{
		Name:            "broken",
		Chainring:       nil,
		Cassette:        []int{11},
		WheelDiameterMM: 700,
		CadenceRPM:      []int{90},
	}
	_, _, err := c.Build()
	if err == nil {
		t.Fatal("Build accepted empty chainring")
	}
	if !apperr.IsInvalidInput(err) {
		t.Fatalf("error %v does not unwrap to InvalidInput", err)
	}
}

func TestBuild_RejectsThreeCadenceValues(t *testing.T) {
	c := sampleConfigs()[0]
	c.CadenceRPM = []int{60, 90, 120}
	if _, _, err := c.Build(); !apperr.IsInvalidInput(err) {
		t.Fatalf("err = %v, want InvalidInput", err)
	}
}
