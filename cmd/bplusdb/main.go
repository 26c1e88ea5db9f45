package main

import "bplusdb/cmd/bplusdb/cmd"

func main() {
	cmd.Execute()
}
