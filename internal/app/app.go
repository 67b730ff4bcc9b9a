// Package app wires the demo together: assets, material sequence,
// tracking configuration, anchor registry, animation driver, audio and
// the chosen platform session.
package app

import (
	"errors"

	"go.uber.org/zap"

	"github.com/Faultbox/markerlens/internal/ar"
	"github.com/Faultbox/markerlens/internal/assets"
	"github.com/Faultbox/markerlens/internal/config"
	"github.com/Faultbox/markerlens/internal/engine/anim"
	"github.com/Faultbox/markerlens/internal/engine/audio"
	"github.com/Faultbox/markerlens/internal/engine/material"
	"github.com/Faultbox/markerlens/internal/engine/scene"
	"github.com/Faultbox/markerlens/internal/logger"
	"github.com/Faultbox/markerlens/internal/platform/sim"
	"github.com/Faultbox/markerlens/internal/platform/viewer"
	"github.com/Faultbox/markerlens/pkg/math"
)

// markerPosition is where the scripted sessions pretend the physical
// marker sits: half a meter in front of the camera origin.
var markerPosition = math.Vec3{Z: -0.5}

// App holds the assembled demo.
type App struct {
	cfg *config.Config

	assets   *assets.Manager
	tracking *ar.TrackingConfig
	scene    *scene.Scene
	registry *ar.Registry
	driver   *anim.Driver

	audio *audio.Manager
	chime []byte
}

// New assembles the demo from configuration. Asset problems are
// recoverable by design: a missing frame set, marker image, checker or
// plane model each degrade one feature and the rest keeps working.
func New(cfg *config.Config) (*App, error) {
	log := logger.Log

	mgr := assets.NewManager()
	for _, dir := range cfg.Assets.Dirs {
		if err := mgr.AddDir(dir); err != nil {
			log.Warn("skipping asset dir", zap.Error(err))
		}
	}

	a := &App{
		cfg:    cfg,
		assets: mgr,
		scene:  scene.New(),
	}

	// The sequence must exist before any anchor can be populated with an
	// animated plane, so it is built here, before tracking is configured.
	seq, err := material.BuildSequence(mgr, cfg.Assets.FramePattern, cfg.Assets.FrameCount)
	if err != nil {
		log.Warn("material sequence unavailable, plane animation disabled", zap.Error(err))
		seq = material.NewSequence()
	} else {
		log.Info("material sequence built", zap.Int("frames", seq.Len()))
	}

	a.tracking, err = ar.LoadTracking(mgr, cfg.Tracking.MarkerImage, cfg.Tracking.MarkerWidthM)
	if err != nil {
		var confErr *ar.ConfigurationError
		if !errors.As(err, &confErr) {
			return nil, err
		}
		log.Warn("tracking disabled", zap.Error(err))
	} else {
		log.Info("tracking configured",
			zap.String("marker", cfg.Tracking.MarkerImage),
			zap.Float32("width_m", cfg.Tracking.MarkerWidthM))
	}

	pop, err := ar.NewPopulator(mgr, cfg.Assets.CheckerTexture, cfg.Assets.PlaneModel, log)
	if err != nil {
		var assetErr *ar.AssetError
		if !errors.As(err, &assetErr) {
			return nil, err
		}
		// Already logged with detail by the populator.
	}

	a.registry = ar.NewRegistry(a.scene, pop.Populate, log)
	a.driver = anim.New(seq, a.registry,
		anim.WithMaterialRate(cfg.Animation.MaterialRateHz),
		anim.WithRotationStep(cfg.Animation.RotationStepRad),
	)

	a.setupAudio()

	return a, nil
}

// setupAudio prepares the detection chime. Any failure leaves the demo
// silent, nothing more.
func (a *App) setupAudio() {
	if !a.cfg.Audio.Enabled {
		return
	}

	data, err := a.assets.Load(a.cfg.Assets.Chime)
	if err != nil {
		logger.Log.Warn("detection chime unavailable", zap.Error(err))
		return
	}

	mgr := audio.New(a.cfg.Audio.Volume)
	if err := mgr.Init(); err != nil {
		logger.Log.Warn("audio init failed, running silent", zap.Error(err))
		return
	}

	a.audio = mgr
	a.chime = data
	a.registry.OnRegistered = func(id ar.AnchorID, _ *scene.Node) {
		if err := a.audio.Play(a.chime); err != nil {
			logger.Log.Warn("chime playback failed", zap.Error(err))
		}
	}
}

// Registry exposes the anchor registry, mainly for inspection after a
// headless run.
func (a *App) Registry() *ar.Registry { return a.registry }

// Driver exposes the animation driver.
func (a *App) Driver() *anim.Driver { return a.driver }

// Scene exposes the scene graph.
func (a *App) Scene() *scene.Scene { return a.scene }

// bind subscribes the core to a platform session.
func (a *App) bind(session ar.Session) {
	a.registry.Bind(session)
	a.driver.Bind(session)
	ar.BindAmbientLight(session, a.scene)
	session.OnUISignal(func(ar.UISignal) {
		// No signal variants are defined yet; drain and ignore.
		logger.Log.Debug("ui signal ignored")
	})
}

// Script builds the scripted platform behavior: a couple of ambient light
// samples, and — only when tracking has a target — the marker detection,
// reported twice to mirror real platforms re-reporting known anchors.
func (a *App) Script() sim.Script {
	dim := float32(0.3)
	bright := float32(0.85)
	script := sim.Script{Steps: []sim.Step{
		{Frame: 5, Light: &dim},
		{Frame: 150, Light: &bright},
	}}

	if !a.tracking.Enabled() {
		return script
	}

	target := a.tracking.Targets()[0]
	anchor := ar.Anchor{
		ID:   ar.AnchorID(target.Name),
		Kind: ar.KindImage,
		Pose: scene.Transform{
			Position: markerPosition,
			Rotation: math.QuatIdentity(),
			Scale:    1,
		},
	}

	detect := a.cfg.Sim.DetectFrame
	script.Steps = append(script.Steps,
		sim.Step{Frame: detect, Anchors: []ar.Anchor{anchor}},
		sim.Step{Frame: detect + 30, Anchors: []ar.Anchor{anchor}},
	)
	return script
}

// Run executes the demo: headless scripted session by default, SDL
// viewer when requested.
func (a *App) Run(useViewer bool) error {
	if useViewer {
		v := viewer.New(viewer.Config{
			Title:      "markerlens",
			Width:      a.cfg.Graphics.Width,
			Height:     a.cfg.Graphics.Height,
			Fullscreen: a.cfg.Graphics.Fullscreen,
			VSync:      a.cfg.Graphics.VSync,
		}, a.scene, a.Script())
		a.bind(v)
		return v.Run()
	}
	return a.RunHeadless(a.cfg.Sim.Frames, true)
}

// RunHeadless replays the script for the given number of frames. With
// realtime false the frames are replayed as fast as possible.
func (a *App) RunHeadless(frames int, realtime bool) error {
	s := sim.New(a.Script(),
		sim.WithFrameRate(a.cfg.Sim.FrameRate),
		sim.WithRealtime(realtime),
		sim.WithLogger(logger.Log),
	)
	a.bind(s)
	s.Run(frames)

	state := a.driver.State()
	logger.Log.Info("headless session complete",
		zap.Int("anchors", a.registry.Len()),
		zap.Int("scene_nodes", a.scene.NodeCount()),
		zap.Int("material_index", state.MaterialIndex),
	)
	return nil
}

// Close releases app resources.
func (a *App) Close() {
	if a.audio != nil {
		a.audio.Close()
	}
}
