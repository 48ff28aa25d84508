package main

import (
	"os"

	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "photonmap"
	app.Usage = "build, query and inspect left-balanced kd-tree photon maps"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "build",
			Usage: "emit a synthetic photon set, balance it and write a container",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "count",
					Value: 10000,
					Usage: "number of photons to emit",
				},
				cli.Int64Flag{
					Name:  "seed",
					Value: 1,
					Usage: "seed for the deterministic synthetic photon source",
				},
				cli.BoolFlag{
					Name:  "obj",
					Usage: "include a Wavefront OBJ point-cloud dump in the container",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "photons.zip",
					Usage: "output container path",
				},
			},
			Action: Build,
		},
		{
			Name:      "query",
			Usage:     "run a k-nearest-neighbour query and the irradiance estimators against a container",
			ArgsUsage: "container.zip",
			Flags: []cli.Flag{
				cli.Float64Flag{Name: "x", Value: 0},
				cli.Float64Flag{Name: "y", Value: 0},
				cli.Float64Flag{Name: "z", Value: 0},
				cli.IntFlag{
					Name:  "k",
					Value: 50,
					Usage: "number of photons to gather",
				},
				cli.Float64Flag{
					Name:  "radius",
					Value: 1.0,
					Usage: "initial search radius",
				},
			},
			Action: Query,
		},
		{
			Name:      "dump",
			Usage:     "write a container's photons as a Wavefront OBJ point cloud",
			ArgsUsage: "container.zip output.obj",
			Action:    Dump,
		},
		{
			Name:      "roundtrip",
			Usage:     "verify that two independent reads of a container reserialize to identical bytes",
			ArgsUsage: "container.zip",
			Action:    Roundtrip,
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Errorf("%s", err)
		os.Exit(1)
	}
}
