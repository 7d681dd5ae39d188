package main

import (
	"log"
	"net/http"
	"os"

	"github.com/shuledash/shuledash/core"
	"github.com/shuledash/shuledash/services/creds"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()

	cli := commandLine{
		conf:  conf,
		store: creds.NewFileStore(conf),
		http:  &http.Client{Timeout: conf.Upstream.Timeout},
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}
