// Command tankexport renders a saved aquarium to a PNG postcard and/or a CSV dump.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/pthm-cable/pixeltank/components"
	"github.com/pthm-cable/pixeltank/config"
	"github.com/pthm-cable/pixeltank/export"
	"github.com/pthm-cable/pixeltank/storage"
	"github.com/pthm-cable/pixeltank/systems"
	"github.com/pthm-cable/pixeltank/tank"
)

func main() {
	_ = godotenv.Load(".env")

	configPath := flag.String("config", os.Getenv("PIXELTANK_CONFIG"), "Path to config.yaml (empty = use defaults)")
	storePath := flag.String("store", os.Getenv("PIXELTANK_STORE"), "Path to the aquarium save file (empty = use config)")
	pngPath := flag.String("png", "", "Write a postcard PNG to this path")
	csvPath := flag.String("csv", "", "Write a CSV dump to this path (- = stdout)")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	if *pngPath == "" && *csvPath == "" {
		fmt.Fprintln(os.Stderr, "nothing to do: pass -png and/or -csv")
		flag.Usage()
		os.Exit(2)
	}

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	path := *storePath
	if path == "" {
		path = cfg.Persistence.Path
	}
	fish, err := loadFish(path, cfg.Persistence.FishKey)
	if err != nil {
		slog.Error("failed to load fish", "store", path, "error", err)
		os.Exit(1)
	}
	slog.Info("loaded fish", "store", path, "count", len(fish))

	if *pngPath != "" {
		bounds := systems.Bounds{Width: float64(cfg.Screen.Width), Height: float64(cfg.Screen.Height)}
		err := writeFile(*pngPath, func(w io.Writer) error {
			return export.WritePNG(w, fish, bounds, export.StyleFromConfig(cfg))
		})
		if err != nil {
			slog.Error("failed to write postcard", "path", *pngPath, "error", err)
			os.Exit(1)
		}
		slog.Info("wrote postcard", "path", *pngPath)
	}

	if *csvPath != "" {
		write := func(w io.Writer) error { return export.WriteCSV(w, fish) }
		if *csvPath == "-" {
			err = write(os.Stdout)
		} else {
			err = writeFile(*csvPath, write)
		}
		if err != nil {
			slog.Error("failed to write csv", "path", *csvPath, "error", err)
			os.Exit(1)
		}
	}
}

// loadFish reads the fish list from a store file. A store without fish
// yields an empty list.
func loadFish(path, key string) ([]components.Fish, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("stat store: %w", err)
	}
	store, err := storage.OpenFileStore(path)
	if err != nil {
		return nil, err
	}
	raw, err := store.Get(key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return tank.Decode([]byte(raw))
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
