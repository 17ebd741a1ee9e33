package main

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	s := &srv{ctx: context.Background()}
	s.loadApp()

	if err := s.app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func (s *srv) loadApp() {
	configFlag := &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path of the toml config file",
		EnvVars: []string{"CONFIG_FILE"},
	}

	s.app = cli.NewApp()
	s.app.Action = cli.ShowAppHelp
	s.app.Name = "Vriksha"
	s.app.Usage = "Sapling tracking backend"
	s.app.Before = s.before
	s.app.Flags = []cli.Flag{configFlag}
	s.app.Commands = []*cli.Command{
		{
			Action:      s.startApi,
			Name:        "api",
			Usage:       "Start service api",
			Category:    "Api",
			Description: `Used for start service api, it serves every endpoint and the websocket.`,
		},
		{
			Action:      s.startSeed,
			Name:        "seed",
			Usage:       "Write the demo dataset into the database",
			Category:    "Database",
			Description: `Used to replace the saved snapshot with the demo dataset.`,
			Flags: []cli.Flag{
				&cli.BoolFlag{Name: "force", Usage: "Overwrite an existing snapshot"},
			},
		},
		{
			Action:      s.startExport,
			Name:        "export",
			Usage:       "Write the sapling report to a file",
			Category:    "Report",
			Description: `Used to export the saved snapshot as csv, pdf or xlsx without starting the api.`,
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "format", Value: "csv", Usage: "csv, pdf or xlsx"},
				&cli.StringFlag{Name: "out", Usage: "Output file, defaults to the report file name"},
			},
		},
	}
}
