package photon

import (
	"bytes"
	"math"
	"testing"

	"github.com/achilleasa/photonmap/spectrum"
	"github.com/achilleasa/photonmap/types"
)

// quantTol is the largest error either packDirection/unpackDirection or
// packPower/unpackPower can introduce, loose enough to cover both.
const quantTol = 1e-2

func approxVec3(a, b types.Vec3, tol float32) bool {
	for i := range a {
		d := a[i] - b[i]
		if float32(math.Abs(float64(d))) > tol {
			return false
		}
	}
	return true
}

func approxSpectrum(a, b spectrum.Spectrum, tol float32) bool {
	return approxVec3(types.Vec3(a), types.Vec3(b), tol)
}

func TestSerializeRoundTrip(t *testing.T) {
	m := fillRandomMap(t, 64, 99)
	m.Balance()
	m.SetScale(0.5)

	var buf bytes.Buffer
	if err := m.Serialize(&buf); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	got, err := Deserialize(&buf)
	if err != nil {
		t.Fatalf("Deserialize failed: %v", err)
	}

	if got.maxPhotons != m.maxPhotons ||
		got.photonCount != m.photonCount ||
		got.balanced != m.balanced ||
		got.lastInnerNode != m.lastInnerNode ||
		got.lastRChildNode != m.lastRChildNode ||
		got.scale != m.scale ||
		got.aabb != m.aabb {
		t.Fatalf("round-tripped map metadata mismatch:\ngot  %+v\nwant %+v", got, m)
	}

	for i := 1; i <= m.photonCount; i++ {
		gp, wp := got.photons[i], m.photons[i]
		// Pos, Depth and Axis pass through the on-disk record verbatim;
		// Normal, Direction and Power go through the compact quantized
		// encoding and are only expected to round-trip approximately.
		if gp.Pos != wp.Pos || gp.Depth != wp.Depth || gp.Axis != wp.Axis {
			t.Fatalf("photon %d exact fields mismatch after round trip:\ngot  %+v\nwant %+v", i, gp, wp)
		}
		if !approxVec3(gp.Normal, wp.Normal, quantTol) {
			t.Fatalf("photon %d normal mismatch after round trip:\ngot  %v\nwant %v", i, gp.Normal, wp.Normal)
		}
		if !approxVec3(gp.Direction, wp.Direction, quantTol) {
			t.Fatalf("photon %d direction mismatch after round trip:\ngot  %v\nwant %v", i, gp.Direction, wp.Direction)
		}
		if !approxSpectrum(gp.Power, wp.Power, quantTol) {
			t.Fatalf("photon %d power mismatch after round trip:\ngot  %v\nwant %v", i, gp.Power, wp.Power)
		}
	}
}

func TestSerializeUnbalancedMap(t *testing.T) {
	m := NewMap(4)
	m.Store(types.Vec3{1, 2, 3}, types.Vec3{0, 0, 1}, types.Vec3{0, 0, -1}, spectrum.New(1, 1, 1), 0)

	var buf bytes.Buffer
	if err := m.Serialize(&buf); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	got, err := Deserialize(&buf)
	if err != nil {
		t.Fatalf("Deserialize failed: %v", err)
	}
	if got.balanced {
		t.Fatal("expected round-tripped map to remain unbalanced")
	}
	if got.photonCount != 1 {
		t.Fatalf("expected 1 photon, got %d", got.photonCount)
	}
}

func TestDeserializeTruncatedStream(t *testing.T) {
	m := fillRandomMap(t, 8, 3)
	m.Balance()

	var buf bytes.Buffer
	if err := m.Serialize(&buf); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	truncated := bytes.NewReader(buf.Bytes()[:buf.Len()-4])
	if _, err := Deserialize(truncated); err != ErrTruncatedMap {
		t.Fatalf("expected ErrTruncatedMap, got %v", err)
	}
}

func TestDeserializeRejectsUnknownVersion(t *testing.T) {
	m := NewMap(1)
	var buf bytes.Buffer
	if err := m.Serialize(&buf); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	raw := buf.Bytes()
	raw[0] = 0xFF // corrupt the version field (little-endian uint32, low byte first)

	if _, err := Deserialize(bytes.NewReader(raw)); err != ErrUnsupportedVersion {
		t.Fatalf("expected ErrUnsupportedVersion, got %v", err)
	}
}
