package main

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/achilleasa/photonmap/persist"
	"github.com/achilleasa/photonmap/photon"
	"github.com/achilleasa/photonmap/types"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Query loads a container, runs an NNSearch and the unfiltered/filtered
// irradiance estimators at the given point, and prints the results as a
// table.
func Query(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing container path argument")
	}

	m, _, err := persist.Read(ctx.Args().First())
	if err != nil {
		return err
	}

	p := types.Vec3{float32(ctx.Float64("x")), float32(ctx.Float64("y")), float32(ctx.Float64("z"))}
	k := ctx.Int("k")
	radiusSq := float32(ctx.Float64("radius") * ctx.Float64("radius"))

	buf := make([]photon.SearchResult, k+1)
	count := m.NNSearch(p, &radiusSq, k, buf)

	logger.Noticef("found %d photons within r^2=%.4f of %v", count, radiusSq, p)

	normal := types.Vec3{0, 0, 1}
	unfiltered := m.EstimateIrradiance(p, normal, float32(ctx.Float64("radius")), k)
	filtered := m.EstimateIrradianceFiltered(p, normal, float32(ctx.Float64("radius")), k)

	var out bytes.Buffer
	table := tablewriter.NewWriter(&out)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Metric", "R", "G", "B"})
	table.Append([]string{"unfiltered irradiance", fmt.Sprintf("%.4f", unfiltered[0]), fmt.Sprintf("%.4f", unfiltered[1]), fmt.Sprintf("%.4f", unfiltered[2])})
	table.Append([]string{"filtered irradiance", fmt.Sprintf("%.4f", filtered[0]), fmt.Sprintf("%.4f", filtered[1]), fmt.Sprintf("%.4f", filtered[2])})
	table.Render()

	logger.Noticef("estimator results\n%s", out.String())
	return nil
}
