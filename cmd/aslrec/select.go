package main

import (
	"fmt"

	asl "github.com/alphara/AIND-Recognizer"
	"github.com/alphara/AIND-Recognizer/corpus"
	"github.com/codegangsta/cli"
	"github.com/golang/glog"
)

var selectCommand = cli.Command{
	Name:      "select",
	ShortName: "s",
	Usage:     "Selects the best model complexity for each vocabulary word.",
	Description: `runs model selection over a corpus snapshot.

You must provide a data set file. A sample config file will look like this:

min_n_components = 2
max_n_components = 10
n_constant = 3
random_state = 14
strategy = "bic"

ex:
 $ aslrec select -d train.json -strategy cv
`,
	Action: selectAction,
	Flags: []cli.Flag{
		cli.StringFlag{Name: "data-set, d", Usage: "the training corpus snapshot file"},
		cli.StringFlag{Name: "strategy", Usage: "selection strategy {constant, bic, dic, cv}"},
		cli.StringFlag{Name: "out, o", Usage: "write the selection summary to a JSON file"},
		cli.IntFlag{Name: "min-components", Usage: "lower bound of the state count search"},
		cli.IntFlag{Name: "max-components", Usage: "upper bound of the state count search"},
		cli.IntFlag{Name: "n-constant", Usage: "fixed state count for the constant strategy"},
	},
}

// selection is the per-word summary written by the select command.
type selection struct {
	Word    string  `json:"word"`
	NStates int     `json:"num_states"`
	LogL    float64 `json:"log_likelihood"`
}

func selectAction(c *cli.Context) {

	initApp(c)

	// Validate parameters. Command flags overwrite config file params.
	requiredStringParam(c, "data-set", &config.DataSet)
	stringParam(c, "strategy", &config.Strategy)
	intParam(c, "min-components", &config.MinComponents)
	intParam(c, "max-components", &config.MaxComponents)
	intParam(c, "n-constant", &config.NConstant)
	asl.Fatal(config.Validate())

	trainCorpus, e := corpus.ReadCorpusFile(config.DataSet)
	asl.Fatal(e)
	glog.Infof("read %d words from [%s]", trainCorpus.Len(), config.DataSet)

	selected := selectModels(trainCorpus)

	var summary []selection
	for _, word := range trainCorpus.Words() {
		cand, ok := selected[word]
		if !ok {
			continue
		}
		obs, _ := trainCorpus.Obs(word)
		logL, e := cand.Model.Score(obs)
		if e != nil {
			glog.Warningf("selected model for [%s] failed to score its own data: %v", word, e)
			continue
		}
		summary = append(summary, selection{Word: word, NStates: cand.NStates, LogL: logL})
		fmt.Printf("%-20s n=%d logL=%.4f\n", word, cand.NStates, logL)
	}

	if out := c.String("out"); len(out) > 0 {
		asl.Fatal(asl.WriteJSONFile(out, summary))
		glog.Infof("wrote selection summary to [%s]", out)
	}
}
