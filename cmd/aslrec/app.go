package main

import (
	"flag"
	"fmt"
	"os"

	asl "github.com/alphara/AIND-Recognizer"
	"github.com/alphara/AIND-Recognizer/corpus"
	"github.com/alphara/AIND-Recognizer/selector"
	"github.com/codegangsta/cli"
	"github.com/golang/glog"
)

var config asl.Config

// initApp configures logging and loads the config file. Command flags
// overwrite config file params afterwards.
func initApp(c *cli.Context) {

	if c.GlobalBool("log-stderr") {
		flag.Set("logtostderr", "true")
	}
	flag.Set("v", c.GlobalString("log-level"))

	fn := c.GlobalString("config-file")
	if _, e := os.Stat(fn); e == nil {
		var err error
		config, err = asl.ReadConfig(fn)
		asl.Fatal(err)
		glog.V(1).Infof("read config file [%s]: %+v", fn, config)
	} else {
		config = asl.DefaultConfig()
		glog.V(1).Infof("no config file [%s], using defaults", fn)
	}
}

// requiredStringParam overwrites param when the flag is set and fails
// when the final value is empty.
func requiredStringParam(c *cli.Context, name string, param *string) {

	if v := c.String(name); len(v) > 0 {
		*param = v
	}
	if len(*param) == 0 {
		asl.Fatal(fmt.Errorf("missing required parameter [%s]", name))
	}
}

// stringParam overwrites param when the flag is set.
func stringParam(c *cli.Context, name string, param *string) {

	if v := c.String(name); len(v) > 0 {
		*param = v
	}
}

// intParam overwrites param when the flag is set to a positive value.
func intParam(c *cli.Context, name string, param *int) {

	if v := c.Int(name); v > 0 {
		*param = v
	}
}

// newSelector builds the configured selection strategy.
func newSelector(c *corpus.Corpus, trainer selector.Trainer) selector.Selector {

	switch config.Strategy {
	case "constant":
		return selector.NewConstant(c, trainer, config)
	case "bic":
		return selector.NewBIC(c, trainer, config)
	case "dic":
		return selector.NewDIC(c, trainer, config)
	case "cv":
		return selector.NewCrossValidation(c, trainer, config)
	}
	asl.Fatal(fmt.Errorf("unknown strategy [%s], expected one of {constant, bic, dic, cv}", config.Strategy))
	return nil
}

// selectModels runs selection over the whole vocabulary and reports
// words with no surviving candidate.
func selectModels(c *corpus.Corpus) map[string]*selector.Candidate {

	trainer := selector.NewHMMTrainer(config)
	sel := newSelector(c, trainer)

	selected := selector.SelectAll(sel, c)
	for _, word := range c.Words() {
		if _, ok := selected[word]; !ok {
			glog.Warningf("no candidate model for word [%s]", word)
		}
	}
	glog.Infof("selected models for %d of %d words using [%s]", len(selected), c.Len(), config.Strategy)
	return selected
}
