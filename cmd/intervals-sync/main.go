package main

import (
	"github.com/2beens/intervals-sync/internal/cmd"
)

func main() {
	cmd.Execute()
}
