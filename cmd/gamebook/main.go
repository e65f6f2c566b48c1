package main

import (
	"context"
	"os"
	"strconv"

	"github.com/pixil98/go-gamebook/cmd/gamebook/command"
	"github.com/pixil98/go-log"
	"github.com/pixil98/go-service"
)

func main() {
	logger := log.NewLogger()

	// An optional trailing positional argument picks the starting story
	// node. Strip it before the service app parses its flags.
	startNode := -1
	if n := len(os.Args); n > 1 {
		if v, err := strconv.Atoi(os.Args[n-1]); err == nil && v >= 0 {
			startNode = v
			os.Args = os.Args[:n-1]
		}
	}

	app, err := service.NewApp(&command.Config{}, command.BuildWorkers(startNode))
	if err != nil {
		logger.WithError(err).Fatal("creating application")
	}

	err = app.Run(context.Background())
	if err != nil {
		logger.WithError(err).Fatal("running application")
	}

	logger.Info("exiting")
}
