package main

import (
	"flag"
	"os"

	"browser/parser"

	"github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML parser config (scriptingEnabled, sourceCodeLocationInfo, debug)")
	flag.Parse()

	config := parser.DefaultConfig()
	if *configPath != "" {
		f, err := os.Open(*configPath)
		if err != nil {
			logrus.WithError(err).Fatal("could not open config file")
		}
		config, err = parser.LoadConfig(f)
		f.Close()
		if err != nil {
			logrus.WithError(err).Fatal("could not parse config file")
		}
	}

	var in = os.Stdin
	if flag.NArg() > 0 {
		f, err := os.Open(flag.Arg(0))
		if err != nil {
			logrus.WithError(err).Fatal("could not open input file")
		}
		defer f.Close()
		in = f
	}

	p := parser.NewParserWithConfig(in, config)
	doc, err := p.Start()
	if err != nil {
		logrus.WithError(err).Fatal("parse failed")
	}

	// this CLI has nowhere to execute a <script>, so treat every pause
	// as a no-op and keep going rather than truncating the tree.
	for p.Paused() {
		doc, err = p.Resume()
		if err != nil {
			logrus.WithError(err).Fatal("parse failed")
		}
	}

	os.Stdout.WriteString(doc.String())
}
