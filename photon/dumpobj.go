package photon

import (
	"bufio"
	"fmt"
	"io"
)

// DumpOBJ writes every stored photon's position as a Wavefront OBJ vertex,
// plus degenerate triangle faces over consecutive vertices so that
// point-cloud-averse viewers still import something visible. This is a
// diagnostic export only; it does not round-trip back into a Map.
// Grounded directly on the reference implementation's dumpOBJ.
func (m *Map) DumpOBJ(w io.Writer) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintln(bw, "o Photons"); err != nil {
		return err
	}
	for i := 1; i <= m.photonCount; i++ {
		p := m.photons[i].Pos
		if _, err := fmt.Fprintf(bw, "v %f %f %f\n", p[0], p[1], p[2]); err != nil {
			return err
		}
	}
	for i := 3; i <= m.photonCount; i++ {
		if _, err := fmt.Fprintf(bw, "f %d %d %d\n", i, i-1, i-2); err != nil {
			return err
		}
	}

	return bw.Flush()
}
