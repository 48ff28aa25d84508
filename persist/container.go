// Package persist bundles a photon map's binary snapshot together with a
// human-readable stats sidecar and an optional OBJ diagnostic dump into a
// single zip archive, the same container idiom the teacher's scene/io
// package uses to bundle a compiled scene's BVH, primitive and material
// sections into one file.
package persist

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/achilleasa/photonmap/log"
	"github.com/achilleasa/photonmap/photon"
)

const (
	photonsEntry = "photons.bin"
	statsEntry   = "stats.json"
	objEntry     = "photons.obj"
)

// Stats is the JSON sidecar written alongside the binary photon dump,
// useful for inspecting a container without decoding the binary section.
type Stats struct {
	PhotonCount int        `json:"photonCount"`
	MaxPhotons  int        `json:"maxPhotons"`
	Balanced    bool       `json:"balanced"`
	Scale       float32    `json:"scale"`
	AABBMin     [3]float32 `json:"aabbMin"`
	AABBMax     [3]float32 `json:"aabbMax"`
}

func statsFor(m *photon.Map) Stats {
	aabb := m.AABB()
	return Stats{
		PhotonCount: m.PhotonCount(),
		MaxPhotons:  m.MaxPhotons(),
		Balanced:    m.IsBalanced(),
		Scale:       m.Scale(),
		AABBMin:     [3]float32{aabb.Min[0], aabb.Min[1], aabb.Min[2]},
		AABBMax:     [3]float32{aabb.Max[0], aabb.Max[1], aabb.Max[2]},
	}
}

// Options controls which optional sections Write includes in the archive.
type Options struct {
	// IncludeOBJ additionally writes a Wavefront OBJ point-cloud dump of
	// every stored photon, for inspection in an external 3D viewer.
	IncludeOBJ bool
}

// Write bundles m into a zip container at path.
func Write(path string, m *photon.Map, opts Options) error {
	logger := log.New("persist")
	logger.Infof("writing photon map container to %s", path)
	start := time.Now()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("persist: creating %s: %w", path, err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	defer zw.Close()

	binaryEntry, err := zw.Create(photonsEntry)
	if err != nil {
		return fmt.Errorf("persist: creating %s entry: %w", photonsEntry, err)
	}
	if err := m.Serialize(binaryEntry); err != nil {
		return fmt.Errorf("persist: writing %s entry: %w", photonsEntry, err)
	}

	statsEntryWriter, err := zw.Create(statsEntry)
	if err != nil {
		return fmt.Errorf("persist: creating %s entry: %w", statsEntry, err)
	}
	enc := json.NewEncoder(statsEntryWriter)
	enc.SetIndent("", "  ")
	if err := enc.Encode(statsFor(m)); err != nil {
		return fmt.Errorf("persist: writing %s entry: %w", statsEntry, err)
	}

	if opts.IncludeOBJ {
		objEntryWriter, err := zw.Create(objEntry)
		if err != nil {
			return fmt.Errorf("persist: creating %s entry: %w", objEntry, err)
		}
		if err := m.DumpOBJ(objEntryWriter); err != nil {
			return fmt.Errorf("persist: writing %s entry: %w", objEntry, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("persist: closing archive: %w", err)
	}

	logger.Infof("wrote photon map container in %s", time.Since(start))
	return nil
}

// Read loads a photon map container written by Write. The stats sidecar is
// returned alongside the map for callers that want it without re-deriving
// it from the map itself.
func Read(path string) (*photon.Map, Stats, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("persist: opening %s: %w", path, err)
	}
	defer zr.Close()

	var m *photon.Map
	var stats Stats
	var sawMap, sawStats bool

	logger := log.New("persist")

	for _, zf := range zr.File {
		switch zf.Name {
		case photonsEntry:
			rc, err := zf.Open()
			if err != nil {
				return nil, Stats{}, fmt.Errorf("persist: opening %s entry: %w", photonsEntry, err)
			}
			m, err = photon.Deserialize(rc)
			rc.Close()
			if err != nil {
				return nil, Stats{}, fmt.Errorf("persist: reading %s entry: %w", photonsEntry, err)
			}
			sawMap = true
		case statsEntry:
			rc, err := zf.Open()
			if err != nil {
				return nil, Stats{}, fmt.Errorf("persist: opening %s entry: %w", statsEntry, err)
			}
			err = json.NewDecoder(rc).Decode(&stats)
			rc.Close()
			if err != nil {
				return nil, Stats{}, fmt.Errorf("persist: reading %s entry: %w", statsEntry, err)
			}
			sawStats = true
		case objEntry:
			// Diagnostic-only; nothing to load back.
		default:
			logger.Warningf("unknown entry %q in photon map container; skipping", zf.Name)
		}
	}

	if !sawMap {
		return nil, Stats{}, fmt.Errorf("persist: %s is missing its %s entry", path, photonsEntry)
	}
	if !sawStats {
		return nil, Stats{}, fmt.Errorf("persist: %s is missing its %s entry", path, statsEntry)
	}

	return m, stats, nil
}
