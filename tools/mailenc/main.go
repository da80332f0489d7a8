package main

import (
	"github.com/spf13/cobra"

	"github.com/zostay/go-mailenc/tools/mailenc/cmd"
)

func main() {
	err := cmd.Execute()
	cobra.CheckErr(err)
}
