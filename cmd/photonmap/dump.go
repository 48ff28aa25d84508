package main

import (
	"errors"
	"os"

	"github.com/achilleasa/photonmap/persist"
	"github.com/urfave/cli"
)

// Dump loads a container and writes a fresh OBJ point-cloud export of its
// photons, regardless of whether the container itself already carries one.
func Dump(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 2 {
		return errors.New("usage: dump container.zip output.obj")
	}

	m, _, err := persist.Read(ctx.Args().Get(0))
	if err != nil {
		return err
	}

	f, err := os.Create(ctx.Args().Get(1))
	if err != nil {
		return err
	}
	defer f.Close()

	if err := m.DumpOBJ(f); err != nil {
		return err
	}

	logger.Noticef("wrote %d photons to %s", m.PhotonCount(), ctx.Args().Get(1))
	return nil
}
