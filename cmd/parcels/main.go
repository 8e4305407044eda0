package main

import "github.com/parcelindex/parcels/cmd/parcels/cmd"

func main() {
	cmd.Execute()
}
