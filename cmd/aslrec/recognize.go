package main

import (
	"fmt"

	asl "github.com/alphara/AIND-Recognizer"
	"github.com/alphara/AIND-Recognizer/corpus"
	"github.com/alphara/AIND-Recognizer/recognizer"
	"github.com/codegangsta/cli"
	"github.com/golang/glog"
)

var recognizeCommand = cli.Command{
	Name:      "recognize",
	ShortName: "r",
	Usage:     "Recognizes test sequences using per-word selected models.",
	Description: `trains and selects per-word models, then scores every test
sequence against every model and reports the best guesses.

ex:
 $ aslrec recognize -d train.json -t test.json -strategy bic
`,
	Action: recognizeAction,
	Flags: []cli.Flag{
		cli.StringFlag{Name: "data-set, d", Usage: "the training corpus snapshot file"},
		cli.StringFlag{Name: "test-set, t", Usage: "the test set snapshot file"},
		cli.StringFlag{Name: "strategy", Usage: "selection strategy {constant, bic, dic, cv}"},
		cli.StringFlag{Name: "results-out, r", Usage: "write ref/hyp results to a JSON file"},
		cli.IntFlag{Name: "min-components", Usage: "lower bound of the state count search"},
		cli.IntFlag{Name: "max-components", Usage: "upper bound of the state count search"},
		cli.IntFlag{Name: "n-constant", Usage: "fixed state count for the constant strategy"},
	},
}

func recognizeAction(c *cli.Context) {

	initApp(c)

	// Validate parameters. Command flags overwrite config file params.
	requiredStringParam(c, "data-set", &config.DataSet)
	requiredStringParam(c, "test-set", &config.TestSet)
	stringParam(c, "strategy", &config.Strategy)
	stringParam(c, "results-out", &config.ResultsFile)
	intParam(c, "min-components", &config.MinComponents)
	intParam(c, "max-components", &config.MaxComponents)
	intParam(c, "n-constant", &config.NConstant)
	asl.Fatal(config.Validate())

	trainCorpus, e := corpus.ReadCorpusFile(config.DataSet)
	asl.Fatal(e)
	testSet, e := corpus.ReadTestSetFile(config.TestSet)
	asl.Fatal(e)
	glog.Infof("read %d words and %d test sequences", trainCorpus.Len(), testSet.Len())

	selected := selectModels(trainCorpus)
	models := recognizer.NewModelSet()
	for _, word := range trainCorpus.Words() {
		if cand, ok := selected[word]; ok {
			models.Add(word, cand.Model)
		}
	}

	results := recognizer.Recognize(models, testSet)
	for i, r := range results {
		guess := r.Guess
		if len(guess) == 0 {
			guess = "<none>"
		}
		fmt.Printf("%4d %-20s -> %-20s\n", i, testSet.Items[i].Word, guess)
	}

	batch := asl.Result{
		BatchID: config.TestSet,
		Ref:     testSet.Ref(),
		Hyp:     recognizer.Guesses(results),
	}
	fmt.Printf("word error rate: %.4f\n", batch.ErrorRate())

	if len(config.ResultsFile) > 0 {
		asl.Fatal(asl.WriteJSONFile(config.ResultsFile, batch))
		glog.Infof("wrote results to [%s]", config.ResultsFile)
	}
}
