package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/restokit/restopos/config"
	"github.com/restokit/restopos/internal/app"
	"github.com/restokit/restopos/internal/restapi"
	"github.com/restokit/restopos/internal/webserver"
	"go.uber.org/zap"
)

var (
	configFile = flag.String("c", "restopos.yml", "config file path")
	initDB     = flag.Bool("initdb", false, "drop and recreate all tables, then exit")
	showVer    = flag.Bool("v", false, "print version and exit")
)

var version = "dev"

func main() {
	flag.Parse()

	if *showVer {
		fmt.Println("restopos", version)
		os.Exit(0)
	}

	cfg := config.LoadConfig(*configFile)

	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	if *initDB {
		application.InitDb()
		zap.S().Info("database initialized")
		return
	}

	webserver.Init(application)
	restapi.InitRouter()

	if err := webserver.Listen(); err != nil {
		zap.S().Fatalf("web server exited: %v", err)
	}
}
