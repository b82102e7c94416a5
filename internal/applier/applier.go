// Package applier applies theme presets to a live document.
//
// A Controller owns the theme state for one target element. It does not
// arbitrate between concurrent owners: two controllers writing the same
// target are last-write-wins, so hosts keep a single controller per target.
package applier

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/codr1/themesmith/internal/dom"
	"github.com/codr1/themesmith/internal/export"
	"github.com/codr1/themesmith/internal/kv"
	"github.com/codr1/themesmith/internal/models"
)

const (
	DefaultThemeKey = "themesmith:runtime-theme"
	DefaultModeKey  = "themesmith:color-mode"

	DarkClass        = "dark"
	AttrTheme        = "data-theme"
	AttrColorMode    = "data-color-mode"
	AttrRuntimeTheme = "data-runtime-theme"
	StyleIDPrefix    = "runtime-theme-"
)

// State is a snapshot of the controller.
type State struct {
	Theme        *models.ThemePreset `json:"theme"`
	ColorMode    models.Mode         `json:"colorMode"`
	IsApplied    bool                `json:"isApplied"`
	GeneratedCSS string              `json:"generatedCss"`
}

type Options struct {
	// AutoApply writes variables to the target on Apply.
	AutoApply bool
	// Persist stores the applied preset and the color mode.
	Persist bool

	ThemeKey string
	ModeKey  string

	// Target receives inline variables. Nil means the document element.
	Target dom.Node

	InitialMode models.Mode
	Logger      *zerolog.Logger
}

func DefaultOptions() Options {
	return Options{
		AutoApply:   true,
		Persist:     true,
		ThemeKey:    DefaultThemeKey,
		ModeKey:     DefaultModeKey,
		InitialMode: models.ModeLight,
	}
}

type Controller struct {
	mu      sync.Mutex
	doc     dom.Document
	storage kv.Storage
	opts    Options
	logger  zerolog.Logger

	state       State
	style       dom.Node
	styleParent dom.Node

	subscribers map[int]func(State)
	nextSubID   int
}

// New builds a controller. doc and storage may be nil, in which case the
// corresponding operations do nothing.
func New(doc dom.Document, storage kv.Storage, opts Options) *Controller {
	if opts.ThemeKey == "" {
		opts.ThemeKey = DefaultThemeKey
	}
	if opts.ModeKey == "" {
		opts.ModeKey = DefaultModeKey
	}
	if !opts.InitialMode.Valid() {
		opts.InitialMode = models.ModeLight
	}

	logger := log.Logger
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	c := &Controller{
		doc:         doc,
		storage:     storage,
		opts:        opts,
		logger:      logger.With().Str("component", "applier").Logger(),
		state:       State{ColorMode: opts.InitialMode},
		subscribers: make(map[int]func(State)),
	}

	if mode, ok := c.persistedMode(); ok {
		c.state.ColorMode = mode
	}
	return c
}

func (c *Controller) target() dom.Node {
	if c.opts.Target != nil {
		return c.opts.Target
	}
	if c.doc == nil {
		return nil
	}
	return c.doc.DocumentElement()
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

func (c *Controller) snapshot() State {
	s := c.state
	if s.Theme != nil {
		theme := *s.Theme
		s.Theme = &theme
	}
	return s
}

// Subscribe registers fn to receive the state after every change. The
// returned function unregisters it.
func (c *Controller) Subscribe(fn func(State)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextSubID
	c.nextSubID++
	c.subscribers[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subscribers, id)
	}
}

// notify must be called without c.mu held.
func (c *Controller) notify(s State) {
	c.mu.Lock()
	fns := make([]func(State), 0, len(c.subscribers))
	for _, fn := range c.subscribers {
		fns = append(fns, fn)
	}
	c.mu.Unlock()
	for _, fn := range fns {
		fn(s)
	}
}

// Apply makes theme the current theme.
func (c *Controller) Apply(theme models.ThemePreset) {
	c.mu.Lock()
	c.state.Theme = &theme
	c.state.GeneratedCSS = export.ThemeCSS(theme)
	c.state.IsApplied = false
	if c.opts.AutoApply {
		c.state.IsApplied = c.writeVariables(theme, c.state.ColorMode)
	}
	if c.opts.Persist {
		c.persistTheme(theme)
	}
	s := c.snapshot()
	c.mu.Unlock()

	c.logger.Debug().Str("theme_id", theme.ID).Bool("applied", s.IsApplied).Msg("Theme applied")
	c.notify(s)
}

// Remove strips the theme from the target and forgets it. The color mode is
// kept.
func (c *Controller) Remove() {
	c.mu.Lock()
	if target := c.target(); target != nil {
		for _, name := range export.CanonicalVariableNames() {
			target.RemoveStyleProperty(name)
		}
		target.RemoveAttribute(AttrTheme)
	}
	c.state.Theme = nil
	c.state.IsApplied = false
	c.state.GeneratedCSS = ""
	if c.opts.Persist {
		c.storageRemove(c.opts.ThemeKey)
	}
	s := c.snapshot()
	c.mu.Unlock()

	c.notify(s)
}

// SetColorMode switches modes, re-applying the held theme when it is live.
func (c *Controller) SetColorMode(mode models.Mode) error {
	if !mode.Valid() {
		return fmt.Errorf("invalid color mode %q", mode)
	}

	c.mu.Lock()
	c.setColorModeLocked(mode)
	s := c.snapshot()
	c.mu.Unlock()

	c.notify(s)
	return nil
}

// ToggleColorMode flips between light and dark and returns the new mode.
// The read and the write happen under one lock, so concurrent toggles never
// lose a flip.
func (c *Controller) ToggleColorMode() models.Mode {
	c.mu.Lock()
	next := models.ModeDark
	if c.state.ColorMode == models.ModeDark {
		next = models.ModeLight
	}
	c.setColorModeLocked(next)
	s := c.snapshot()
	c.mu.Unlock()

	c.notify(s)
	return next
}

func (c *Controller) setColorModeLocked(mode models.Mode) {
	c.state.ColorMode = mode
	if c.state.IsApplied && c.state.Theme != nil {
		c.writeVariables(*c.state.Theme, mode)
	}
	if c.opts.Persist {
		c.storageSet(c.opts.ModeKey, string(mode))
	}
}

// Restore re-applies the persisted preset, if any. It reports whether a theme
// was restored.
func (c *Controller) Restore() bool {
	raw, ok := c.storageGet(c.opts.ThemeKey)
	if !ok {
		return false
	}
	var theme models.ThemePreset
	if err := json.Unmarshal([]byte(raw), &theme); err != nil {
		c.logger.Warn().Err(err).Str("key", c.opts.ThemeKey).Msg("Discarding unreadable persisted theme")
		return false
	}
	if mode, ok := c.persistedMode(); ok {
		c.mu.Lock()
		c.state.ColorMode = mode
		c.mu.Unlock()
	}
	c.Apply(theme)
	return true
}

// writeVariables must be called with c.mu held. It reports whether a target
// was written.
func (c *Controller) writeVariables(theme models.ThemePreset, mode models.Mode) bool {
	target := c.target()
	if target == nil {
		return false
	}
	for _, decl := range export.CanonicalDeclarations(theme.Colors(mode)) {
		target.SetStyleProperty(decl.Name, decl.Value)
	}
	if mode == models.ModeDark {
		target.AddClass(DarkClass)
	} else {
		target.RemoveClass(DarkClass)
	}
	target.SetAttribute(AttrTheme, theme.ID)
	target.SetAttribute(AttrColorMode, string(mode))
	return true
}

func (c *Controller) persistTheme(theme models.ThemePreset) {
	data, err := json.Marshal(theme)
	if err != nil {
		c.logger.Warn().Err(err).Str("theme_id", theme.ID).Msg("Failed to encode theme")
		return
	}
	c.storageSet(c.opts.ThemeKey, string(data))
}

func (c *Controller) persistedMode() (models.Mode, bool) {
	if !c.opts.Persist {
		return "", false
	}
	raw, ok := c.storageGet(c.opts.ModeKey)
	if !ok {
		return "", false
	}
	mode, err := models.ParseMode(raw)
	if err != nil {
		return "", false
	}
	return mode, true
}

func (c *Controller) storageGet(key string) (string, bool) {
	if c.storage == nil {
		return "", false
	}
	value, ok, err := c.storage.Get(key)
	if err != nil {
		c.logger.Debug().Err(err).Str("key", key).Msg("Storage read skipped")
		return "", false
	}
	return value, ok
}

func (c *Controller) storageSet(key, value string) {
	if c.storage == nil {
		return
	}
	if err := c.storage.Set(key, value); err != nil {
		c.logger.Debug().Err(err).Str("key", key).Msg("Storage write skipped")
	}
}

func (c *Controller) storageRemove(key string) {
	if c.storage == nil {
		return
	}
	if err := c.storage.Remove(key); err != nil {
		c.logger.Debug().Err(err).Str("key", key).Msg("Storage remove skipped")
	}
}
