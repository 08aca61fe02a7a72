// Command aslrec trains per-word hidden Markov models, selects the
// best model complexity per word, and recognizes test sequences.
package main

import (
	"os"

	"github.com/codegangsta/cli"
	"github.com/golang/glog"
)

const (
	appName    = "aslrec"
	appVersion = "0.1"
)

func main() {

	defer glog.Flush()

	app := cli.NewApp()
	app.Name = appName
	app.Version = appVersion
	app.Usage = "isolated sign recognition with per-word hidden Markov models"
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "config-file, c", Value: "config.toml", Usage: "configuration file"},
		cli.BoolFlag{Name: "log-stderr", Usage: "logs are written to standard error"},
		cli.StringFlag{Name: "log-level", Value: "0", Usage: "enable V-leveled logging at the specified level"},
	}
	app.Commands = []cli.Command{
		selectCommand,
		recognizeCommand,
	}

	if e := app.Run(os.Args); e != nil {
		glog.Fatal(e)
	}
}
