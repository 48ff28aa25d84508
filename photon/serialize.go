package photon

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/achilleasa/photonmap/types"
)

// mapHeader is the fixed-size preamble written before the photon records.
// Every field is a basic fixed-width type so that encoding/binary can write
// and read it directly, without the layout guarantees encoding/gob declines
// to make.
type mapHeader struct {
	Version        uint32
	AABBMin        types.Vec3
	AABBMax        types.Vec3
	Balanced       uint8
	MaxPhotons     uint32
	PhotonCount    uint32
	LastInnerNode  uint32
	LastRChildNode uint32
	Scale          float32
}

// diskPhoton is the compact, fixed-layout on-disk record: normal, direction
// and power are quantized (quantize.go), trading precision for a smaller
// file. The in-memory Photon keeps these at full precision; only
// Serialize/Deserialize ever touch diskPhoton.
type diskPhoton struct {
	Pos types.Vec3

	NormalTheta, NormalPhi uint16
	DirTheta, DirPhi       uint16

	PowerMantissa [3]uint8
	PowerExp      uint8

	Depth uint16
	Axis  types.Axis
}

func toDiskPhoton(p Photon) diskPhoton {
	nt, np := packDirection(p.Normal)
	dt, dp := packDirection(p.Direction)
	mantissa, exp := packPower(p.Power)
	return diskPhoton{
		Pos:           p.Pos,
		NormalTheta:   nt,
		NormalPhi:     np,
		DirTheta:      dt,
		DirPhi:        dp,
		PowerMantissa: mantissa,
		PowerExp:      exp,
		Depth:         p.Depth,
		Axis:          p.Axis,
	}
}

func fromDiskPhoton(d diskPhoton) Photon {
	return Photon{
		Pos:       d.Pos,
		Normal:    unpackDirection(d.NormalTheta, d.NormalPhi),
		Direction: unpackDirection(d.DirTheta, d.DirPhi),
		Power:     unpackPower(d.PowerMantissa, d.PowerExp),
		Depth:     d.Depth,
		Axis:      d.Axis,
	}
}

// Serialize writes a deterministic, fixed-layout binary snapshot of the
// map: a header followed by one fixed-size record per stored photon, each
// converted to its compact diskPhoton encoding. Deserialize(Serialize(m))
// reproduces m's metadata and each photon's Pos/Depth/Axis exactly;
// Normal/Direction/Power round-trip to within the RGBE/polar-angle
// encoding's quantization error.
func (m *Map) Serialize(w io.Writer) error {
	balancedByte := uint8(0)
	if m.balanced {
		balancedByte = 1
	}
	header := mapHeader{
		Version:        formatVersion,
		AABBMin:        m.aabb.Min,
		AABBMax:        m.aabb.Max,
		Balanced:       balancedByte,
		MaxPhotons:     uint32(m.maxPhotons),
		PhotonCount:    uint32(m.photonCount),
		LastInnerNode:  uint32(m.lastInnerNode),
		LastRChildNode: uint32(m.lastRChildNode),
		Scale:          m.scale,
	}
	if err := binary.Write(w, binary.LittleEndian, header); err != nil {
		return fmt.Errorf("photon: writing header: %w", err)
	}
	for i := 1; i <= m.photonCount; i++ {
		if err := binary.Write(w, binary.LittleEndian, toDiskPhoton(m.photons[i])); err != nil {
			return fmt.Errorf("photon: writing photon %d: %w", i, err)
		}
	}
	return nil
}

// Deserialize reads back a map written by Serialize.
func Deserialize(r io.Reader) (*Map, error) {
	var header mapHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, ErrTruncatedMap
		}
		return nil, fmt.Errorf("photon: reading header: %w", err)
	}
	if header.Version != formatVersion {
		return nil, ErrUnsupportedVersion
	}

	m := NewMap(int(header.MaxPhotons))
	m.aabb = types.AABB{Min: header.AABBMin, Max: header.AABBMax}
	m.balanced = header.Balanced != 0
	m.photonCount = int(header.PhotonCount)
	m.lastInnerNode = int(header.LastInnerNode)
	m.lastRChildNode = int(header.LastRChildNode)
	m.scale = header.Scale

	for i := 1; i <= m.photonCount; i++ {
		var d diskPhoton
		if err := binary.Read(r, binary.LittleEndian, &d); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return nil, ErrTruncatedMap
			}
			return nil, fmt.Errorf("photon: reading photon %d: %w", i, err)
		}
		m.photons[i] = fromDiskPhoton(d)
	}
	return m, nil
}
