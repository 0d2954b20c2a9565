package main

import (
	"fmt"
	"os"
	"venued/internal/di"
	"venued/internal/structures"

	"github.com/spf13/pflag"
)

func main() {
	flags := &structures.CliFlags{}
	pflag.StringVarP(&flags.ConfigPath, "config", "c", "./config/venued.yaml", "path to YAML config")
	pflag.BoolVarP(&flags.DebugMode, "debug", "d", false, "mirror logs to stderr")
	pflag.Parse()

	if _, err := di.InitApp(flags); err != nil {
		fmt.Fprintf(os.Stderr, "venued: %s\n", err)
		os.Exit(1)
	}
}
