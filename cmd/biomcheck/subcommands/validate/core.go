//
//  Copyright © The BIOM Format Development Team. All rights reserved.
//

package validate

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"

	"github.com/biocore/biomcheck/pkg/biom"
	"github.com/biocore/biomcheck/pkg/biom/loaders"
	"github.com/biocore/biomcheck/pkg/core/config"
)

// Execute runs the validate command: it loads the input table with the
// declared encoding, validates it, and prints the report. An invalid
// table is reported through the exit status.
func Execute(ctx context.Context, cmd *cli.Command) error {
	if err := config.Load(); err != nil {
		return err
	}

	formatVersion := config.VConfig.GetString(config.FormatVersion)
	if fv := cmd.String("format-version"); fv != "" {
		formatVersion = fv
	}
	detailed := cmd.Bool("detailed") || config.VConfig.GetBool(config.DetailedReport)

	doc, err := openInput(cmd.String("input"), loaders.Encoding(cmd.String("encoding")))
	if err != nil {
		return err
	}

	validator := biom.New(biom.Config{
		FormatVersion: formatVersion,
		Detailed:      detailed,
	})

	rep := validator.Validate(doc)
	for _, line := range rep.Lines {
		fmt.Println(line)
	}

	if !rep.Valid {
		return errors.New("the input file is not a valid BIOM-formatted file")
	}

	fmt.Println("The input file is a valid BIOM-formatted file.")
	return nil
}

func openInput(path string, encoding loaders.Encoding) (biom.Document, error) {
	if path == "-" {
		return loaders.Load(os.Stdin, encoding)
	}
	return loaders.Open(path, encoding)
}
