package main

import (
	"flag"
)

type AppFlags struct {
	GlobalConfigFile string
	URL              string
	Selector         string
	Once             bool
}

func ParseFlags() AppFlags {
	globalConfigFile := flag.String("config", "", "Path to the global YAML/JSON configuration file. If not set, searches default locations.")
	globalConfigFileAlias := flag.String("c", "", "Alias for -config")

	urlFlag := flag.String("url", "", "Monitor a single URL, overriding the targets list from the configuration file.")
	urlFlagAlias := flag.String("u", "", "Alias for -url")

	selectorFlag := flag.String("selector", "", "CSS selector to track when -url is used. Defaults to the whole document body.")
	selectorFlagAlias := flag.String("s", "", "Alias for -selector")

	onceFlag := flag.Bool("once", false, "Run a single detection cycle per target and exit instead of polling.")

	flag.Parse()

	flags := AppFlags{Once: *onceFlag}

	if *globalConfigFile != "" {
		flags.GlobalConfigFile = *globalConfigFile
	} else if *globalConfigFileAlias != "" {
		flags.GlobalConfigFile = *globalConfigFileAlias
	}

	if *urlFlag != "" {
		flags.URL = *urlFlag
	} else if *urlFlagAlias != "" {
		flags.URL = *urlFlagAlias
	}

	if *selectorFlag != "" {
		flags.Selector = *selectorFlag
	} else if *selectorFlagAlias != "" {
		flags.Selector = *selectorFlagAlias
	}

	return flags
}
