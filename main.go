package main

import (
	"fmt"
	"os"

	"academy/internal/server"
)

func main() {
	mode := "api"
	if len(os.Args) > 1 {
		mode = os.Args[1]
	}
	server.ConfigLoad()
	switch mode {
	case "api":
		server.ApiInit()
	case "worker":
		server.WorkerInit()
	default:
		fmt.Println("Usage: academy [api|worker] [config.json]")
		os.Exit(1)
	}
}
