package main

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
)

var update = flag.Bool("update", false, "update script files")

func TestMain(m *testing.M) {
	os.Exit(testscript.RunMain(m, map[string]func() int{
		"briefctl": run,
	}))
}

func TestScript(t *testing.T) {
	flag.Parse()

	testscript.Run(t, testscript.Params{
		Dir:           "./testdata/",
		UpdateScripts: *update,
		Setup: func(e *testscript.Env) error {
			e.Setenv("AZURE_POSTGRES_DRIVER", "sqlite")
			e.Setenv("AZURE_POSTGRES_DATA_SOURCE",
				filepath.Join(e.WorkDir, "briefing.db")+"?_pragma=foreign_keys(1)&_time_format=sqlite")
			return nil
		},
	})
}
