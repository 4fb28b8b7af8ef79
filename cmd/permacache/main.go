/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import (
	"github.com/permacache/permacache/cmd/permacache/cmd"
)

func main() {
	cmd.Execute()
}
