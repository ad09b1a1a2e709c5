package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "debtportal",
		Usage: "Debt-account portal JSON API",
		Commands: []*cli.Command{
			serveCommand,
			seedCommand,
			nanoidCommand,
			paymentLinkCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("application failed")
	}
}
