package render

import (
	"fmt"
	"image"
	"image/color"
	_ "image/png" // Register PNG decoder
	"log"
	"os"
	"path/filepath"
	"sync"
)

// AssetSpec names one image and the placeholder size used when its file is
// missing.
type AssetSpec struct {
	Name string
	W, H int
}

// GardenAssets lists every image the painter draws or the HUD shows.
var GardenAssets = []AssetSpec{
	{"grass", 64, 64},
	{"sand", 64, 64},
	{"eau_1", 448, 256},
	{"eau_2", 448, 256},
	{"eau_3", 448, 256},
	{"seeds", seedSprite, seedSprite},
	{"sprout_1", sproutSprite, sproutSprite},
	{"sprout_2", sproutSprite, sproutSprite},
	{"sprout_3", sproutSprite, sproutSprite},
	{"tree_1", treeSprite, treeSprite},
	{"tree_2", treeSprite, treeSprite},
	{"tree_3", treeSprite, treeSprite},
	{"shovel", 64, 64},
	{"bucket", 64, 64},
}

type asset struct {
	img         image.Image
	ready       bool
	placeholder bool
}

// Loader decodes images in the background. Each image stays pending until its
// goroutine finishes; callers poll Ready and skip drawing until then.
type Loader struct {
	dir string

	mu      sync.RWMutex
	entries map[string]*asset

	wg sync.WaitGroup
}

// NewLoader returns a loader reading PNG files from dir.
func NewLoader(dir string) *Loader {
	return &Loader{dir: dir, entries: make(map[string]*asset)}
}

// Start begins loading every spec in its own goroutine and returns at once.
func (l *Loader) Start(specs []AssetSpec) {
	l.mu.Lock()
	for _, spec := range specs {
		if _, ok := l.entries[spec.Name]; !ok {
			l.entries[spec.Name] = &asset{}
		}
	}
	l.mu.Unlock()

	for _, spec := range specs {
		l.wg.Add(1)
		go func(spec AssetSpec) {
			defer l.wg.Done()
			img, err := decodeFile(filepath.Join(l.dir, spec.Name+".png"))
			placeholder := false
			if err != nil {
				log.Printf("[assets] %s: %v, using placeholder", spec.Name, err)
				img = Placeholder(spec)
				placeholder = true
			}
			l.mu.Lock()
			l.entries[spec.Name] = &asset{img: img, ready: true, placeholder: placeholder}
			l.mu.Unlock()
		}(spec)
	}
}

// Wait blocks until every started load has finished.
func (l *Loader) Wait() { l.wg.Wait() }

// Ready reports whether name has finished loading.
func (l *Loader) Ready(name string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	a, ok := l.entries[name]
	return ok && a.ready
}

// Image returns the decoded image for name once it is ready.
func (l *Loader) Image(name string) (image.Image, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	a, ok := l.entries[name]
	if !ok || !a.ready {
		return nil, false
	}
	return a.img, true
}

// IsPlaceholder reports whether name fell back to a generated image.
func (l *Loader) IsPlaceholder(name string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	a, ok := l.entries[name]
	return ok && a.placeholder
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image %s: %w", path, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}
	return img, nil
}

// placeholderColors gives each missing asset a recognisable flat colour.
var placeholderColors = map[string]color.RGBA{
	"grass":  {R: 107, G: 179, B: 71, A: 255},
	"sand":   {R: 226, G: 205, B: 150, A: 255},
	"eau_1":  {R: 64, G: 140, B: 220, A: 255},
	"eau_2":  {R: 70, G: 150, B: 228, A: 255},
	"eau_3":  {R: 58, G: 132, B: 212, A: 255},
	"seeds":  {R: 120, G: 84, B: 40, A: 255},
	"shovel": {R: 150, G: 150, B: 160, A: 255},
	"bucket": {R: 90, G: 110, B: 200, A: 255},
}

// Placeholder paints a stand-in image for spec. Tiles are filled solid;
// plant sprites are a disc on a transparent background, growing darker
// with each stage.
func Placeholder(spec AssetSpec) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, spec.W, spec.H))
	col, tile := placeholderColors[spec.Name]
	if tile && spec.Name != "seeds" {
		for i := 0; i < len(img.Pix); i += 4 {
			img.Pix[i+0] = col.R
			img.Pix[i+1] = col.G
			img.Pix[i+2] = col.B
			img.Pix[i+3] = col.A
		}
		// Faint ripples so water frames differ visibly.
		if len(spec.Name) > 4 && spec.Name[:4] == "eau_" {
			shift := int(spec.Name[4] - '0')
			for y := 0; y < spec.H; y++ {
				if (y+shift*5)%16 != 0 {
					continue
				}
				for x := 0; x < spec.W; x++ {
					img.SetRGBA(x, y, color.RGBA{R: 150, G: 200, B: 245, A: 255})
				}
			}
		}
		return img
	}
	if !tile {
		col = color.RGBA{R: 46, G: 125, B: 50, A: 255}
	}
	cx, cy := float64(spec.W)/2, float64(spec.H)/2
	r := float64(min(spec.W, spec.H)) / 3
	if spec.Name == "seeds" {
		r = float64(min(spec.W, spec.H)) / 6
	}
	for y := 0; y < spec.H; y++ {
		for x := 0; x < spec.W; x++ {
			dx, dy := float64(x)+0.5-cx, float64(y)+0.5-cy
			if dx*dx+dy*dy <= r*r {
				img.SetRGBA(x, y, col)
			}
		}
	}
	return img
}
