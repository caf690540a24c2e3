package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/leaseportal/internal/cli"
	"github.com/dmitrijs2005/leaseportal/internal/server/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(ctx, cfg, os.Stdin, os.Stdout)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
