package main

import (
	"testing"

	"github.com/rogpeppe/go-internal/testscript"

	"github.com/getmockd/logtree/pkg/cli"
)

// TestMain registers the CLI as an in-process testscript command.
func TestMain(m *testing.M) {
	testscript.Main(m, map[string]func(){
		"logtree": cli.Execute,
	})
}

func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata",
		Setup: func(env *testscript.Env) error {
			env.Setenv("LOGTREE_CONFIG", "")
			env.Setenv("LOGTREE_ACCEPT_MODE", "")
			env.Setenv("LOGTREE_ROOT_LEVEL", "")
			return nil
		},
	})
}
