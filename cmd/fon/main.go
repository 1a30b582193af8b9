/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import (
	"github.com/fastobjectnotation/fon/cmd/fon/cmd"
)

func main() {
	cmd.Execute()
}
