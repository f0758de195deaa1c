package main

import "github.com/meltforce/immich-bulk-share-cli/cmd"

func main() {
	cmd.Execute()
}
