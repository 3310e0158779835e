package main

import (
	"flag"
	"log"
	"os"

	"github.com/mogaika/anim_browser/config"
	"github.com/mogaika/anim_browser/pack/anim"
	"github.com/mogaika/anim_browser/utils"
	"github.com/mogaika/anim_browser/vfs"
	"github.com/mogaika/anim_browser/web"
)

func main() {
	var addr, dir, configPath string
	var verbose bool
	flag.StringVar(&addr, "i", "", "Address of server (overrides config listen)")
	flag.StringVar(&dir, "dir", "", "Path to directory with *.anim files")
	flag.StringVar(&configPath, "config", "", "Path to yaml config")
	flag.BoolVar(&verbose, "v", false, "Log decoder progress")
	flag.Parse()

	if dir == "" {
		flag.PrintDefaults()
		return
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal(err)
	}
	if addr != "" {
		cfg.Listen = addr
	}
	if verbose {
		cfg.Verbose = true
	}

	opts, err := cfg.DecoderOptions(utils.NewLogger(os.Stdout, "[anim] "))
	if err != nil {
		log.Fatal(err)
	}
	anim.SetDefaultOptions(opts)

	rp, err := cfg.RotationPolicy()
	if err != nil {
		log.Fatal(err)
	}

	if err := web.StartServer(cfg.Listen, vfs.NewDirectoryDriver(dir), rp); err != nil {
		log.Fatal(err)
	}
}
