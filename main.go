package main

import "github.com/itsmostafa/pdfbm/cmd"

func main() {
	cmd.Execute()
}
