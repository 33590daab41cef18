//
//  Copyright © The BIOM Format Development Team. All rights reserved.
//

package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/biocore/biomcheck/cmd/biomcheck/subcommands/serve"
	"github.com/biocore/biomcheck/cmd/biomcheck/subcommands/validate"
	"github.com/biocore/biomcheck/cmd/biomcheck/version"
)

func main() {
	cmd := &cli.Command{
		Name:    "biomcheck",
		Usage:   "Test files for adherence to the Biological Observation Matrix (BIOM) format specification, defined at http://biom-format.org",
		Version: version.GetVersion(),
		Commands: []*cli.Command{
			{
				Name:  "validate",
				Usage: "Validate a BIOM-formatted file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "input",
						Aliases:  []string{"i"},
						Usage:    "Load the BIOM table from `FILE`, or use '-' for stdin",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "encoding",
						Aliases: []string{"e"},
						Usage:   "The physical encoding of the input.  Must be one of 'json' or 'hdf5'",
						Value:   "json",
						Action: func(ctx context.Context, command *cli.Command, s string) error {
							if s != "json" && s != "hdf5" {
								return fmt.Errorf("unsupported encoding: %s", s)
							}
							return nil
						},
					},
					&cli.StringFlag{
						Name:  "format-version",
						Usage: "The specific format version to validate against.  Can also be set via BIOM_FORMAT_VERSION.",
					},
					&cli.BoolFlag{
						Name:    "detailed",
						Aliases: []string{"d"},
						Usage:   "Include more details in the output report",
					},
				},
				Action: validate.Execute,
			},
			{
				Name:  "serve",
				Usage: "Creates a validation service accepting JSON tables over HTTP",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "port",
						Usage: "The TCP port to serve on.  Can also be set via BIOM_SERVE_PORT.",
					},
				},
				Action: serve.Execute,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
