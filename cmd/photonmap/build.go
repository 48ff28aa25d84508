package main

import (
	"errors"
	"math/rand"

	"github.com/achilleasa/photonmap/persist"
	"github.com/achilleasa/photonmap/photon"
	"github.com/achilleasa/photonmap/spectrum"
	"github.com/achilleasa/photonmap/types"
	"github.com/urfave/cli"
)

// Build emits a deterministic synthetic photon set (the [-1, 1]^3 cube filled with
// randomly-positioned, randomly-oriented photons of uniform white power),
// balances it and writes it out as a container. It exists to exercise the
// map's full lifecycle from the command line without requiring an actual
// light transport simulation wired in front of it.
func Build(ctx *cli.Context) error {
	setupLogging(ctx)

	count := ctx.Int("count")
	if count <= 0 {
		return errors.New("count must be positive")
	}

	m := photon.NewMap(count)
	r := rand.New(rand.NewSource(ctx.Int64("seed")))

	for i := 0; i < count; i++ {
		pos := types.Vec3{r.Float32()*2 - 1, r.Float32()*2 - 1, r.Float32()*2 - 1}
		normal := types.Vec3{0, 0, 1}
		dir := types.Vec3{r.Float32()*2 - 1, r.Float32()*2 - 1, r.Float32()*2 - 1}.Normalize()
		power := spectrum.New(1, 1, 1)
		if !m.Store(pos, normal, dir, power, 0) {
			logger.Warningf("photon map filled up after %d photons", i)
			break
		}
	}
	m.SetScale(1.0 / float32(m.PhotonCount()))

	logger.Noticef("emitted %d photons, balancing", m.PhotonCount())
	m.Balance()

	return persist.Write(ctx.String("out"), m, persist.Options{IncludeOBJ: ctx.Bool("obj")})
}
