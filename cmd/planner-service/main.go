package main

import (
	"os"

	"github.com/grupo-nexus/planner/plannerservice"
)

func main() {
	if err := plannerservice.Run(); err != nil {
		os.Exit(1)
	}
}
