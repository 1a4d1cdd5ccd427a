package main

import (
	"fmt"
	"os"

	"github.com/infotraining/quote_syncer/pkg/version"
)

func printVersion() {
	fmt.Println(version.GetVersion())
	os.Exit(0)
}

func getVersion() string {
	return version.GetVersion()
}
