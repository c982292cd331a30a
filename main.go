// Йоу, чат! Сьогодні ми будемо розбирати broad phase для CCD!
// Беремо два знімки мешу (момент t0 і t1), будуємо коробки для вершин,
// ребер і граней, і шукаємо всі пари коробок які перетинаються.
// Це ліцензія AGPL - означає що наш код має бути відкритим, і всі модифікації теж.

// Пакет main - це точка входу нашої програми, звідси все починається!
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"strings"

	// toml - крутий формат для конфігів, як JSON але читабельніший
	"github.com/BurntSushi/toml"
	// zap - мегашвидкий логер, набагато швидший за fmt.Printf
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"ScalableCCD/pipeline"
)

// isDebug - флаг який можна включити при запуску через -debug
// В дебаг режимі буде більше логів і інформації для розробки
var (
	isDebug    = flag.Bool("debug", false, "Enable debug log output")
	configPath = flag.String("config", "config.toml", "Config file, .toml or .yaml")

	limit     = flag.Int("n", 0, "Sweep only the first `N` volumes of the sorted order, 0 for all")
	batchSize = flag.Int("b", 0, "Primary volumes per batch, 0 for a single batch")
	workers   = flag.Int("p", 0, "Worker goroutines, 0 for min(NumCPU, 64)")
	sortAxis  = flag.String("axis", "", "Sweep axis: auto, x, y or z")
	inflation = flag.Float64("inflate", 0, "Widen every box by this distance")
	verify    = flag.Bool("verify", false, "Check the sweep against a BVH query")
	compare   fileList
)

func init() {
	flag.Var(&compare, "c", "Ground truth JSON `file` to compare with, may be repeated")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] mesh_t0 mesh_t1\n", os.Args[0])
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()

	var logger *zap.Logger
	if *isDebug {
		logger = unwrap(zap.NewDevelopment())
	} else {
		logger = unwrap(zap.NewProduction())
	}
	defer func(logger *zap.Logger) {
		// Sync на stderr може повернути EINVAL
		_ = logger.Sync()
	}(logger)

	printBuildInfo(logger)

	if flag.NArg() != 2 {
		flag.Usage()
		return
	}

	config, err := readConfig(*configPath)
	if err != nil {
		logger.Error("Read config fail", zap.Error(err))
		return
	}
	overrideConfig(&config)

	p, err := pipeline.New(logger, config)
	if err != nil {
		logger.Error("Init pipeline fail", zap.Error(err))
		return
	}

	// Ctrl+C зупиняє sweep, недороблений батч відкидається
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	r, err := p.Run(ctx, flag.Arg(0), flag.Arg(1))
	if err != nil {
		logger.Error("Broad phase fail", zap.Error(err))
		return
	}
	logger.Info("Overlaps",
		zap.Int("vertex-face", len(r.VF)),
		zap.Int("edge-edge", len(r.EE)),
		zap.Int("total", len(r.VF)+len(r.EE)),
		zap.Int("axis-vf", r.AxisVF),
		zap.Int("axis-ee", r.AxisEE),
	)
}

// overrideConfig застосовує тільки ті прапорці, які задані явно
func overrideConfig(c *pipeline.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "n":
			c.Limit = *limit
		case "b":
			c.Sweep.BatchSize = *batchSize
		case "p":
			c.Sweep.Workers = *workers
		case "axis":
			c.Sweep.SortAxis = *sortAxis
		case "inflate":
			c.Inflation = *inflation
		case "verify":
			c.Verify = *verify
		case "c":
			c.GroundTruth = compare
		}
	})
}

// printBuildInfo виводить інформацію про збірку
// Це допомагає знайти проблеми з версіями бібліотек
func printBuildInfo(logger *zap.Logger) {
	binaryInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	settings := make(map[string]string)
	for _, v := range binaryInfo.Settings {
		settings[v.Key] = v.Value
	}
	logger.Debug("Build info", zap.Any("settings", settings))
}

// readConfig читає конфіг з файлу
// Формат вибирається по розширенню: TOML або YAML
// Якщо знайдемо невідомі налаштування - повернемо помилку
// Якщо файлу за замовчуванням немає - беремо стандартні налаштування
func readConfig(path string) (pipeline.Config, error) {
	c := pipeline.DefaultConfig()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		f, err := os.Open(path)
		if err != nil {
			return pipeline.Config{}, err
		}
		defer f.Close()
		dec := yaml.NewDecoder(f)
		dec.KnownFields(true)
		if err := dec.Decode(&c); err != nil {
			return pipeline.Config{}, err
		}
	default:
		meta, err := toml.DecodeFile(path, &c)
		if errors.Is(err, fs.ErrNotExist) && !isFlagSet("config") {
			return c, nil
		} else if err != nil {
			return pipeline.Config{}, err
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			var err errUnknownConfig
			for _, key := range undecoded {
				err = append(err, key.String())
			}
			return pipeline.Config{}, err
		}
	}
	return c, nil
}

func isFlagSet(name string) (set bool) {
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return
}

// errUnknownConfig - це список невідомих налаштувань
// Коли знаходимо щось чого не очікували в конфігу
type errUnknownConfig []string

func (e errUnknownConfig) Error() string {
	return "unknown config keys: [" + strings.Join(e, ", ") + "]"
}

// fileList - прапорець який можна вказати кілька разів
type fileList []string

func (l *fileList) String() string { return strings.Join(*l, ",") }

func (l *fileList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

// unwrap - хелпер функція яка спрощує обробку помилок
// Якщо є помилка - відразу панікуємо
func unwrap[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
