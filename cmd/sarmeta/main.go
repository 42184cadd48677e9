/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import (
	"github.com/ssargent/sarmeta/cmd/sarmeta/cmd"
)

func main() {
	cmd.Execute()
}
