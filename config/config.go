package config

import (
	"io"
	"slices"

	"github.com/jmgilman/go/media"
	"github.com/jmgilman/go/media/render"
)

// Config is the decoded media configuration.
type Config struct {
	Images    CacheConfig     `json:"images"`
	Icons     CacheConfig     `json:"icons"`
	Animation AnimationConfig `json:"animation"`
	Logging   LoggingConfig   `json:"logging"`
}

// CacheConfig configures one resource cache.
type CacheConfig struct {
	// SearchPaths lists resource directories. Earlier entries take precedence.
	SearchPaths []string `json:"searchPaths"`
}

// AnimationConfig configures animated vector images.
type AnimationConfig struct {
	FramesPerSecond float64     `json:"framesPerSecond"`
	Decay           DecayConfig `json:"decay"`
}

// DecayConfig bounds how long animated cells keep repainting.
type DecayConfig struct {
	Initial float64 `json:"initial"`
	Step    float64 `json:"step"`
}

// LoggingConfig configures the media logger.
type LoggingConfig struct {
	Level           string `json:"level"`
	CacheOperations bool   `json:"cacheOperations"`
}

// Default returns the configuration an empty file produces.
func Default() *Config {
	return &Config{
		Images: CacheConfig{SearchPaths: []string{}},
		Icons:  CacheConfig{SearchPaths: []string{}},
		Animation: AnimationConfig{
			FramesPerSecond: media.DefaultFramesPerSecond,
			Decay: DecayConfig{
				Initial: 9,
				Step:    render.DefaultDecayStep,
			},
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// FrameRate returns a frame-rate provider reporting the configured rate.
func (c *Config) FrameRate() media.FrameRateFunc {
	fps := c.Animation.FramesPerSecond
	return func() float64 {
		return fps
	}
}

// Apply adds the configured search paths to images and icons. Either cache may
// be nil.
func (c *Config) Apply(images, icons *media.Cache) {
	applyCache(images, c.Images)
	applyCache(icons, c.Icons)
}

// Install configures the process-wide caches and frame rate.
func (c *Config) Install() {
	media.SetDefaultFrameRate(c.FrameRate())
	c.Apply(media.Images(), media.Icons())
}

// Logger builds a media logger writing to w.
func (c *Config) Logger(w io.Writer) (*media.Logger, error) {
	level, err := media.ParseLogLevel(c.Logging.Level)
	if err != nil {
		return nil, err
	}
	return media.NewLogger(media.LogConfig{
		Level:                 level,
		Output:                w,
		EnableCacheOperations: c.Logging.CacheOperations,
	}), nil
}

// Animator creates an Animator spending the configured decay step.
func (c *Config) Animator(cells render.CellAccessor) *render.Animator {
	return render.NewAnimator(cells, c.Animation.Decay.Step)
}

// Populate assigns a resource to cell with the configured initial decay.
func (c *Config) Populate(model *render.Model, cell render.CellID, resourceName string) {
	model.Populate(cell, resourceName, c.Animation.Decay.Initial)
}

// applyCache adds dirs in reverse so the first listed is searched first.
func applyCache(cache *media.Cache, cfg CacheConfig) {
	if cache == nil {
		return
	}
	for _, dir := range slices.Backward(cfg.SearchPaths) {
		cache.AddSearchPath(dir)
	}
}
