package main

import (
	"errors"
	"flag"
	"runtime"

	"raycaster/internal/logger"
	"raycaster/pkg/config"
	"raycaster/pkg/engine"
	"raycaster/pkg/loader"
)

func init() {
	// GLFW requires the program to be running on the main thread
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	scenePath := flag.String("scene", "", "Path to scene document (overrides scene.path)")
	headless := flag.Bool("headless", false, "Render one frame to -out without opening a window")
	outPath := flag.String("out", "render.png", "Output image for -headless")
	writeConfig := flag.String("write-config", "", "Write the effective configuration to this path and exit")
	flag.Parse()

	cfg, cfgErr := config.LoadConfig(*configPath)

	log := logger.NewLogger(cfg.Logging.Level)
	if cfg.Logging.File != "" {
		fileLog, err := logger.NewMultiLogger(cfg.Logging.Level, cfg.Logging.File)
		if err != nil {
			log.Warnf("Logging to console only: %v", err)
		} else {
			log = fileLog
		}
	}
	defer log.Close()

	if cfgErr != nil {
		if !errors.Is(cfgErr, config.ErrNotFound) {
			log.Fatalf("Failed to load configuration: %v", cfgErr)
		}
		log.Warn(cfgErr)
	}

	if *scenePath != "" {
		cfg.Scene.Path = *scenePath
	}

	if *writeConfig != "" {
		if err := config.SaveConfig(cfg, *writeConfig); err != nil {
			log.Fatalf("Failed to write configuration: %v", err)
		}
		log.Infof("Configuration written to %s", *writeConfig)
		return
	}

	scene, err := loader.NewFileLoader().Load(cfg.Scene.Path)
	if err != nil {
		log.Fatalf("Failed to load scene: %v", err)
	}
	log.Infof("Loaded %s: %d planes, %d spheres, %d lights",
		cfg.Scene.Path, len(scene.Planes), len(scene.Spheres), len(scene.Lights))

	if *headless {
		if _, err := engine.RenderHeadless(cfg, scene, engine.NewPNGWriter(*outPath), log); err != nil {
			log.Fatalf("Headless render failed: %v", err)
		}
		log.Infof("Frame written to %s", *outPath)
		return
	}

	game, err := engine.NewEngine(cfg, scene, log)
	if err != nil {
		log.Fatalf("Failed to initialize engine: %v", err)
	}

	log.Info("Engine initialized, starting render loop...")
	game.Run()
}
