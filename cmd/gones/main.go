// Package main implements the nespit NES emulator executable.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"nespit/internal/app"
	"nespit/internal/config"
	"nespit/internal/version"
)

func main() {
	var (
		romFile    = flag.String("rom", "", "path to an iNES ROM file")
		configFile = flag.String("config", "", "path to a JSON configuration file")
		backend    = flag.String("backend", "", "display backend: ebiten, terminal, or headless (overrides config)")
		traceFlag  = flag.Bool("trace", false, "write a nestest-format instruction trace instead of running a display")
		tracePath  = flag.String("trace-file", "", "trace output path (default stdout)")
		nogui      = flag.Bool("nogui", false, "shorthand for -backend headless")
		debug      = flag.Bool("debug", false, "enable debug logging")
		showVer    = flag.Bool("version", false, "print version information and exit")
	)
	flag.Usage = printUsage
	flag.Parse()

	if *showVer {
		version.PrintBuildInfo()
		os.Exit(0)
	}

	if *romFile == "" {
		fmt.Fprintln(os.Stderr, "nespit: -rom is required")
		flag.Usage()
		os.Exit(1)
	}

	configPath := *configFile
	if configPath == "" {
		configPath = config.GetDefaultConfigPath()
	}
	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		log.Fatalf("nespit: loading config: %v", err)
	}

	if *nogui {
		cfg.Window.Backend = "headless"
	}
	if *backend != "" {
		cfg.Window.Backend = *backend
	}
	if *debug {
		cfg.Debug.EnableLogging = true
		cfg.Debug.LogLevel = "DEBUG"
	}
	if *traceFlag {
		cfg.Debug.Trace = true
		cfg.Debug.TracePath = *tracePath
	}

	application, err := app.New(*romFile, cfg)
	if err != nil {
		log.Fatalf("nespit: %v", err)
	}

	setupGracefulShutdown()

	log.Printf("nespit: running %s with backend %q", *romFile, cfg.Window.Backend)
	if err := application.Run(); err != nil {
		log.Fatalf("nespit: %v", err)
	}
}

func setupGracefulShutdown() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		log.Println("nespit: interrupt received, shutting down")
		os.Exit(0)
	}()
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "nespit - a 6502/NES-bus emulator")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "USAGE:")
	fmt.Fprintln(os.Stderr, "  nespit -rom <file> [options]")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "OPTIONS:")
	flag.PrintDefaults()
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "EXAMPLES:")
	fmt.Fprintln(os.Stderr, "  nespit -rom game.nes")
	fmt.Fprintln(os.Stderr, "  nespit -rom game.nes -backend terminal")
	fmt.Fprintln(os.Stderr, "  nespit -rom nestest.nes -trace -trace-file nestest.log -backend headless")
}
