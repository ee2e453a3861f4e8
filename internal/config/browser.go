package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"poi-map-service/internal/sheet"
)

// Browser configures the terminal browser.
type Browser struct {
	APIURL      string    `yaml:"api_url"`
	User        string    `yaml:"user"`
	SnapPoints  []float64 `yaml:"snap_points"`
	InitialSnap float64   `yaml:"initial_snap"` // 0 means the middle snap point
	SnapPolicy  string    `yaml:"snap_policy"`
	NarrowWidth float64   `yaml:"narrow_width"`
	Categories  []string  `yaml:"categories"`
	Notify      bool      `yaml:"desktop_notifications"`
}

// DefaultCategories are the categories of the seeded data set.
var DefaultCategories = []string{"고기", "분식", "중식", "국수", "치킨", "카페", "술집", "호프"}

func DefaultBrowser() Browser {
	snaps := make([]float64, len(sheet.DefaultSnapPoints))
	for i, p := range sheet.DefaultSnapPoints {
		snaps[i] = float64(p)
	}
	return Browser{
		APIURL:      "http://localhost:8080",
		SnapPoints:  snaps,
		SnapPolicy:  "nearest",
		NarrowWidth: 100,
		Categories:  append([]string(nil), DefaultCategories...),
	}
}

// LoadBrowser reads path over the defaults. A missing file yields the defaults.
func LoadBrowser(path string) (Browser, error) {
	cfg := DefaultBrowser()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Browser{}, fmt.Errorf("load browser config: read %q: %w", path, err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Browser{}, fmt.Errorf("load browser config: parse %q: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Browser{}, fmt.Errorf("load browser config %q: %w", path, err)
	}
	return cfg, nil
}

func (b Browser) Snaps() sheet.SnapPoints {
	out := make(sheet.SnapPoints, len(b.SnapPoints))
	for i, p := range b.SnapPoints {
		out[i] = sheet.SnapPoint(p)
	}
	return out
}

func (b Browser) Resolver() (sheet.Resolver, error) {
	return sheet.ResolverFor(b.SnapPolicy)
}

func (b Browser) Validate() error {
	snaps := b.Snaps()
	if err := snaps.Validate(); err != nil {
		return err
	}
	if b.InitialSnap != 0 && !snaps.Contains(sheet.SnapPoint(b.InitialSnap)) {
		return fmt.Errorf("initial_snap %g is not one of snap_points", b.InitialSnap)
	}
	r, err := b.Resolver()
	if err != nil {
		return err
	}
	if _, ok := r.(sheet.Threshold); ok && len(snaps) != 3 {
		return fmt.Errorf("snap policy threshold needs exactly 3 snap_points, got %d", len(snaps))
	}
	if b.NarrowWidth < 0 {
		return fmt.Errorf("narrow_width must be >= 0, got %g", b.NarrowWidth)
	}
	if strings.TrimSpace(b.APIURL) == "" {
		return errors.New("api_url is required")
	}
	return nil
}
