package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/vitalhub/storefront/config"
	"github.com/vitalhub/storefront/internal/adminapi"
	"github.com/vitalhub/storefront/internal/app"
	"github.com/vitalhub/storefront/internal/shopapi"
	"github.com/vitalhub/storefront/internal/webserver"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"
)

var (
	h        = flag.Bool("h", false, "help usage")
	showVer  = flag.Bool("v", false, "show version")
	conffile = flag.String("c", "", "config yaml file")
	initcfg  = flag.Bool("initcfg", false, "write default config to storefront.yml and exit")
)

var version = "dev"

func printHelp() {
	if *h {
		ustr := fmt.Sprintf("storefront version: %s, usage: storefront -h\nOptions:", version)
		fmt.Fprintf(os.Stderr, "%s\n", ustr)
		flag.PrintDefaults()
		os.Exit(0)
	}
}

func main() {
	flag.Parse()
	printHelp()

	if *showVer {
		fmt.Println(version)
		os.Exit(0)
	}

	if *initcfg {
		data, err := yaml.Marshal(config.DefaultAppConfig)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if err := os.WriteFile("storefront.yml", data, 0o644); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	cfg := config.LoadConfig(*conffile)
	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	webserver.Init(application)
	shopapi.Register()
	adminapi.Register()

	errc := make(chan error, 1)
	go func() {
		errc <- webserver.Start()
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errc:
		zap.L().Error("web server stopped", zap.Error(err))
	case sig := <-sigc:
		zap.L().Info("shutting down", zap.String("signal", sig.String()))
	}
}
