// genmesh пише два знімки тканини (t0 і t1) в OBJ файли,
// щоб було на чому запускати broad phase без справжніх сцен.
package main

import (
	"flag"
	"math/rand"
	"os"
	"path/filepath"

	"ScalableCCD/mesh"
)

var (
	size   = flag.Int("n", 200, "Grid vertices per side")
	height = flag.Float64("height", 0.3, "Arch height of the t1 snapshot")
	jitter = flag.Float64("jitter", 1e-3, "Random vertex displacement at t1")
	seed   = flag.Int64("seed", 1, "Random seed")
	out    = flag.String("o", ".", "Output directory")
)

func main() {
	flag.Parse()

	// Створюємо директорію якщо її немає
	if err := os.MkdirAll(*out, 0755); err != nil {
		panic(err)
	}

	t0 := mesh.Cloth(*size, 1)
	t1 := t0.Drape(rand.New(rand.NewSource(*seed)), *height, *jitter)

	for name, m := range map[string]*mesh.Mesh{"cloth_t0.obj": t0, "cloth_t1.obj": t1} {
		f, err := os.Create(filepath.Join(*out, name))
		if err != nil {
			panic(err)
		}
		if err := m.WriteOBJ(f); err != nil {
			panic(err)
		}
		if err := f.Close(); err != nil {
			panic(err)
		}
	}
}
