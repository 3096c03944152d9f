// Package sprites loads the per-kind icon images and issues renderable
// skin handles to the simulation.
package sprites

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/mkord/rps-arena/components"
)

// Provider issues skins and resolves them back to textures for drawing.
// Build prepares the provider for a round at the given icon size; skin
// handles are only meaningful to the provider that issued them.
type Provider interface {
	Build(size int32) error
	Skin(k components.Kind) components.Skin
	Texture(s components.Skin) rl.Texture2D
	Unload()
}

// parseAssets maps config asset names to kinds and checks completeness.
func parseAssets(assets map[string]string) (map[components.Kind]string, error) {
	byKind := make(map[components.Kind]string, components.KindCount)
	for name, path := range assets {
		k, err := components.ParseKind(name)
		if err != nil {
			return nil, fmt.Errorf("assets: %w", err)
		}
		byKind[k] = path
	}
	for _, k := range components.Kinds {
		if _, ok := byKind[k]; !ok {
			return nil, fmt.Errorf("assets: no image for kind %q", k)
		}
	}
	return byKind, nil
}

// loadScaled loads an image from disk scaled to size and uploads it as a
// texture. Scaling happens once on the CPU so draws stay a plain blit.
func loadScaled(path string, size int32) (rl.Texture2D, error) {
	img := rl.LoadImage(path)
	if img.Width == 0 || img.Height == 0 {
		return rl.Texture2D{}, fmt.Errorf("loading image %s", path)
	}
	rl.ImageResize(img, size, size)
	tex := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	rl.SetTextureFilter(tex, rl.FilterBilinear)
	return tex, nil
}

// Cache is the fast path: one prebuilt texture per kind at the active
// icon size, so morphs and draws never touch the disk.
type Cache struct {
	assets   map[components.Kind]string
	size     int32
	textures [components.KindCount]rl.Texture2D
}

// NewCache creates an empty cache for the given asset table. Build must
// run before the first Skin request.
func NewCache(assets map[string]string) (*Cache, error) {
	byKind, err := parseAssets(assets)
	if err != nil {
		return nil, err
	}
	return &Cache{assets: byKind}, nil
}

// Build loads and scales every kind's image at the given icon size,
// replacing any previously built textures. Runs once per round spawn.
func (c *Cache) Build(size int32) error {
	c.Unload()
	c.size = size
	for _, k := range components.Kinds {
		tex, err := loadScaled(c.assets[k], size)
		if err != nil {
			return fmt.Errorf("building %s skin: %w", k, err)
		}
		c.textures[k] = tex
	}
	return nil
}

// Skin returns the prebuilt handle for a kind.
func (c *Cache) Skin(k components.Kind) components.Skin {
	return components.Skin{ID: uint32(k)}
}

// Texture resolves a skin issued by this cache.
func (c *Cache) Texture(s components.Skin) rl.Texture2D {
	return c.textures[s.ID]
}

// Unload releases all built textures.
func (c *Cache) Unload() {
	for i := range c.textures {
		if c.textures[i].ID != 0 {
			rl.UnloadTexture(c.textures[i])
			c.textures[i] = rl.Texture2D{}
		}
	}
}

// Loader is the slow path: every skin request loads the image from disk
// and scales it on the spot. It exists for running without a prebuilt
// cache; the engine works the same either way.
type Loader struct {
	assets   map[components.Kind]string
	size     int32
	textures []rl.Texture2D
}

// NewLoader creates a loader issuing skins at the given icon size.
func NewLoader(assets map[string]string, size int32) (*Loader, error) {
	byKind, err := parseAssets(assets)
	if err != nil {
		return nil, err
	}
	return &Loader{assets: byKind, size: size}, nil
}

// Build changes the icon size for subsequent loads. Already-issued
// handles keep their old size.
func (l *Loader) Build(size int32) error {
	l.size = size
	return nil
}

// Skin loads and scales the kind's image, returning a fresh handle.
// A failed load produces a handle that draws nothing.
func (l *Loader) Skin(k components.Kind) components.Skin {
	tex, err := loadScaled(l.assets[k], l.size)
	if err != nil {
		tex = rl.Texture2D{}
	}
	l.textures = append(l.textures, tex)
	return components.Skin{ID: uint32(len(l.textures) - 1)}
}

// Texture resolves a skin issued by this loader.
func (l *Loader) Texture(s components.Skin) rl.Texture2D {
	return l.textures[s.ID]
}

// Unload releases every texture this loader ever issued.
func (l *Loader) Unload() {
	for _, tex := range l.textures {
		if tex.ID != 0 {
			rl.UnloadTexture(tex)
		}
	}
	l.textures = l.textures[:0]
}

// Flat is a GPU-free provider for headless runs and tests. Handles carry
// the kind itself and resolve to the zero texture.
type Flat struct{}

// Build is a no-op.
func (Flat) Build(int32) error { return nil }

// Skin returns a handle tagged with the kind.
func (Flat) Skin(k components.Kind) components.Skin {
	return components.Skin{ID: uint32(k)}
}

// Texture always returns the zero texture.
func (Flat) Texture(components.Skin) rl.Texture2D {
	return rl.Texture2D{}
}

// Unload is a no-op.
func (Flat) Unload() {}
