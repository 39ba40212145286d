package main

import (
	"fmt"
	"os"
)

var version = "dev"

func main() {
	a := &app{}
	root := newRootCmd(a)
	err := root.Execute()
	a.close()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
