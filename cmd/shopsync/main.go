package main

import (
	"context"
	"fmt"
	"os"

	"github.com/lazuli-inc/shopsync"
)

func usage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  shopsync <domain> <email> <password> [logoUrl] [description]")
	fmt.Fprintln(os.Stderr, "  shopsync delete <storeId> <email> <password>")
}

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		usage()
		os.Exit(1)
	}

	pipeline := shopsync.NewPipeline(shopsync.NewConfig())
	ctx := context.Background()

	if args[0] == "delete" {
		if len(args) != 4 {
			usage()
			os.Exit(1)
		}
		if err := pipeline.RunDelete(ctx, args[1], args[2], args[3]); err != nil {
			os.Exit(1)
		}
		return
	}

	if len(args) < 3 {
		usage()
		os.Exit(1)
	}
	domain, email, password := args[0], args[1], args[2]
	logoURL, description := "", ""
	if len(args) > 3 {
		logoURL = args[3]
	}
	if len(args) > 4 {
		description = args[4]
	}

	if err := pipeline.Run(ctx, domain, email, password, logoURL, description); err != nil {
		os.Exit(1)
	}
}
