package rawio

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/LLNL/adapt-go/field"
)

func TestWriteThenReadVolumeRoundTrip(t *testing.T) {
	dims := field.Dims{W: 2, H: 2, D: 2}
	values := []field.FunctionType{0, 1, 2, 3, 4, 5, 6, 7}
	f, err := field.New(dims, values)
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "volume.raw")
	if err := WriteVolume(path, f); err != nil {
		t.Fatal(err)
	}

	got, err := ReadVolume(path, dims)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range values {
		if got.At(i) != v {
			t.Errorf("value %d = %v, want %v", i, got.At(i), v)
		}
	}
}

func TestReadVolumeShortFile(t *testing.T) {
	dims := field.Dims{W: 2, H: 2, D: 2}
	path := filepath.Join(t.TempDir(), "short.raw")
	if err := os.WriteFile(path, []byte{0, 0, 0, 0}, 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := ReadVolume(path, dims); err != ErrShortRead {
		t.Fatalf("err = %v, want ErrShortRead", err)
	}
}

func TestWriteVTKStructuredPointsHeader(t *testing.T) {
	dims := field.Dims{W: 2, H: 1, D: 1}
	f, err := field.New(dims, []field.FunctionType{1.5, 2.5})
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "out.vtk")
	if err := WriteVTKStructuredPoints(path, f); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)

	for _, want := range []string{
		"DATASET STRUCTURED_POINTS",
		"DIMENSIONS 2 1 1",
		"POINT_DATA 2",
		"SCALARS transform float 1",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("VTK output missing %q", want)
		}
	}
}

func TestWriteValuesMismatchedDims(t *testing.T) {
	dims := field.Dims{W: 2, H: 2, D: 2}
	err := WriteValues(filepath.Join(t.TempDir(), "x.raw"), dims, []field.FunctionType{0, 1})
	if err == nil {
		t.Fatal("expected error for mismatched values length")
	}
}
