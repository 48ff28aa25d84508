package persist

import (
	"path/filepath"
	"testing"

	"github.com/achilleasa/photonmap/photon"
	"github.com/achilleasa/photonmap/spectrum"
	"github.com/achilleasa/photonmap/types"
)

func buildTestMap(t *testing.T) *photon.Map {
	t.Helper()
	m := photon.NewMap(8)
	for i := 0; i < 8; i++ {
		pos := types.Vec3{float32(i), 0, 0}
		m.Store(pos, types.Vec3{0, 0, 1}, types.Vec3{0, 0, -1}, spectrum.New(1, 1, 1), 0)
	}
	m.Balance()
	m.SetScale(0.25)
	return m
}

func TestWriteReadRoundTrip(t *testing.T) {
	m := buildTestMap(t)
	path := filepath.Join(t.TempDir(), "photons.zip")

	if err := Write(path, m, Options{IncludeOBJ: true}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	got, stats, err := Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	if stats.PhotonCount != m.PhotonCount() {
		t.Fatalf("stats photonCount = %d, want %d", stats.PhotonCount, m.PhotonCount())
	}
	if stats.Scale != m.Scale() {
		t.Fatalf("stats scale = %f, want %f", stats.Scale, m.Scale())
	}
	if got.PhotonCount() != m.PhotonCount() {
		t.Fatalf("round-tripped map photonCount = %d, want %d", got.PhotonCount(), m.PhotonCount())
	}
	if !got.IsBalanced() {
		t.Fatal("expected round-tripped map to be balanced")
	}
}

func TestWriteWithoutOBJ(t *testing.T) {
	m := buildTestMap(t)
	path := filepath.Join(t.TempDir(), "photons.zip")

	if err := Write(path, m, Options{}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	if _, _, err := Read(path); err != nil {
		t.Fatalf("Read failed: %v", err)
	}
}

func TestReadMissingFile(t *testing.T) {
	if _, _, err := Read(filepath.Join(t.TempDir(), "missing.zip")); err == nil {
		t.Fatal("expected an error reading a nonexistent container")
	}
}
