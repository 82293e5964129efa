package main

import "github.com/dgallion1/docproof/internal/cli"

func main() {
	cli.Execute()
}
