package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"

	"github.com/df07/go-offline-pathtracer/pkg/config"
	"github.com/df07/go-offline-pathtracer/pkg/output"
	"github.com/df07/go-offline-pathtracer/pkg/renderer"
	"github.com/df07/go-offline-pathtracer/pkg/scene"
)

// cliFlags holds every command line option; render settings only apply when set explicitly
type cliFlags struct {
	configPath  string
	saveConfig  string
	listScenes  bool
	debug       bool
	scene       string
	width       int
	height      int
	aspectRatio float64
	samples     int
	depth       int
	tileSize    int
	workers     int
	seed        int64
	accelerator string
	output      string

	set map[string]bool
}

func parseFlags(args []string) (*cliFlags, error) {
	defaults := config.Default()
	f := &cliFlags{}

	fs := flag.NewFlagSet("pathtracer", flag.ContinueOnError)
	fs.StringVar(&f.configPath, "config", "", "YAML render config; flags override its values")
	fs.StringVar(&f.saveConfig, "save-config", "", "Write the effective config to this path and exit")
	fs.BoolVar(&f.listScenes, "list-scenes", false, "List the built-in scenes and exit")
	fs.BoolVar(&f.debug, "debug", false, "Log every completed tile")
	fs.StringVar(&f.scene, "scene", defaults.Scene, "Built-in scene name (see -list-scenes)")
	fs.IntVar(&f.width, "width", defaults.Width, "Image width in pixels")
	fs.IntVar(&f.height, "height", defaults.Height, "Image height in pixels (0 = from aspect ratio)")
	fs.Float64Var(&f.aspectRatio, "aspect", defaults.AspectRatio, "Width / height (0 = the scene's own)")
	fs.IntVar(&f.samples, "samples", defaults.SamplesPerPixel, "Samples per pixel")
	fs.IntVar(&f.depth, "depth", defaults.MaxDepth, "Maximum bounces per path")
	fs.IntVar(&f.tileSize, "tile-size", defaults.TileSize, "Tile edge in pixels")
	fs.IntVar(&f.workers, "workers", defaults.Workers, "Render goroutines (0 = one per logical CPU)")
	fs.Int64Var(&f.seed, "seed", defaults.Seed, "Seed for scene layout and sampling")
	fs.StringVar(&f.accelerator, "accelerator", defaults.Accelerator, "Scene accelerator: bvh or list")
	fs.StringVar(&f.output, "output", defaults.Output, "Output .png or .ppm file; empty or - writes PPM to stdout")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	f.set = make(map[string]bool)
	fs.Visit(func(fl *flag.Flag) { f.set[fl.Name] = true })
	return f, nil
}

// apply copies explicitly set flags over cfg
func (f *cliFlags) apply(cfg *config.Config) {
	if f.set["scene"] {
		cfg.Scene = f.scene
	}
	if f.set["width"] {
		cfg.Width = f.width
	}
	if f.set["height"] {
		cfg.Height = f.height
	}
	if f.set["aspect"] {
		cfg.AspectRatio = f.aspectRatio
	}
	if f.set["samples"] {
		cfg.SamplesPerPixel = f.samples
	}
	if f.set["depth"] {
		cfg.MaxDepth = f.depth
	}
	if f.set["tile-size"] {
		cfg.TileSize = f.tileSize
	}
	if f.set["workers"] {
		cfg.Workers = f.workers
	}
	if f.set["seed"] {
		cfg.Seed = f.seed
	}
	if f.set["accelerator"] {
		cfg.Accelerator = f.accelerator
	}
	if f.set["output"] {
		cfg.Output = f.output
	}
}

// resolveConfig loads the config file, if any, and layers the flags on top
func resolveConfig(f *cliFlags) (*config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		loaded, err := config.Load(f.configPath)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	f.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func logHostInfo(logger zerolog.Logger) {
	event := logger.Info()
	if cpuInfo, err := cpu.Info(); err == nil && len(cpuInfo) > 0 {
		event = event.Str("cpu", cpuInfo[0].ModelName)
	}
	if cores, err := cpu.Counts(true); err == nil {
		event = event.Int("logical_cpus", cores)
	}
	if memInfo, err := mem.VirtualMemory(); err == nil {
		event = event.Uint64("total_ram_mb", memInfo.Total/(1024*1024))
	}
	event.Msg("Host")
}

// run renders the configured scene and writes it to cfg.Output or stdout
func run(cfg *config.Config, stdout io.Writer, logger zerolog.Logger) error {
	s, err := cfg.NewScene()
	if err != nil {
		return err
	}

	raytracer := renderer.NewRaytracer(s, cfg.RenderConfig(), logger)
	img, _, err := raytracer.Render()
	if err != nil {
		return err
	}

	if cfg.Output == "" || cfg.Output == "-" {
		return output.WritePPM(stdout, img)
	}
	if err := output.Save(cfg.Output, img); err != nil {
		return err
	}
	logger.Info().Str("path", cfg.Output).Msg("Render saved")
	return nil
}

func main() {
	f, err := parseFlags(os.Args[1:])
	if err != nil {
		if err == flag.ErrHelp {
			return
		}
		os.Exit(2)
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if f.debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	// Logs go to stderr so a PPM can stream on stdout
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	if f.listScenes {
		for _, info := range scene.ListScenes() {
			fmt.Printf("%-20s %s\n", info.ID, info.Description)
		}
		return
	}

	cfg, err := resolveConfig(f)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	if f.saveConfig != "" {
		if err := config.Save(f.saveConfig, cfg); err != nil {
			log.Fatal().Err(err).Str("path", f.saveConfig).Msg("saving config failed")
		}
		log.Info().Str("path", f.saveConfig).Msg("Config saved")
		return
	}

	logHostInfo(log.Logger)
	log.Info().Str("scene", cfg.Scene).Int64("seed", cfg.Seed).Str("accelerator", cfg.Accelerator).Msg("Starting render")

	if err := run(cfg, os.Stdout, log.Logger); err != nil {
		log.Fatal().Err(err).Msg("render failed")
	}
}
