package cli

import "batchtest/internal/config"

// Flags holds command-line flags
type Flags struct {
	ConfigFile     string
	Ignore         []string
	ReplaceIgnored bool
	ResultsDir     string
	LogFormat      string
	NoColor        bool

	// run
	NoResults bool
	NoGC      bool
	Progress  bool

	// failures
	Plain bool
	All   bool
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		ConfigFile:    f.ConfigFile,
		Ignore:        f.Ignore,
		ReplacePrefix: f.ReplaceIgnored,
		ResultsDir:    f.ResultsDir,
		LogFormat:     f.LogFormat,
		NoColor:       f.NoColor,
		NoResults:     f.NoResults,
		NoGC:          f.NoGC,
		Progress:      f.Progress,
		Plain:         f.Plain,
		ShowResolved:  f.All,
	}
}
