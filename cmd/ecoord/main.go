// Command ecoord inspects and converts ecoord transform-tree documents.
package main

import (
	"os"

	"go.uber.org/zap"

	"github.com/tum-gis/ecoord/cli"
)

var version = "dev"

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync() //nolint:errcheck

	if err := cli.NewApp(version).Run(os.Args); err != nil {
		logger.Sugar().Fatal(err)
	}
}
