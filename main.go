package main

import (
	"github.com/petitlyon/cartomat/cmd"
)

var Version = "development"

func main() {
	cmd.Execute(Version)
}
