// logtree CLI - drive a hierarchical module logger tree from the command line
package main

import "github.com/getmockd/logtree/pkg/cli"

func main() {
	cli.Execute()
}
