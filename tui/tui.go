// Package tui provides the terminal user interface for trimming a video.
package tui

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/user/video-trim-cli/clip"
	"github.com/user/video-trim-cli/config"
	"github.com/user/video-trim-cli/db"
	"github.com/user/video-trim-cli/pkg/timeutil"
	"github.com/user/video-trim-cli/slider"
	"github.com/user/video-trim-cli/tui/components"
	"github.com/user/video-trim-cli/tui/forms"
	"github.com/user/video-trim-cli/tui/styles"
)

const (
	// tickInterval is how often the player is polled.
	tickInterval = 100 * time.Millisecond
	// resultDisplayDuration is how long to show results.
	resultDisplayDuration = 3 * time.Second
	// keyStep and keyStepFast are arrow-key drag distances in cells.
	keyStep     = 1.0
	keyStepFast = 5.0
	// hitTolerance is how far from a handle, in cells, a click still grabs it.
	hitTolerance = 1.5
	// recentExports is how many exports the panel lists.
	recentExports = 5
	// defaultFilmRows is the filmstrip height in rows.
	defaultFilmRows = 2
	// timelineTop is the screen row of the timeline box (below the status bar).
	timelineTop = 1
)

// Options configures a Model.
type Options struct {
	// VideoPath is the file being trimmed.
	VideoPath string
	// Player controls playback. May be nil in which case only the slider works.
	Player Player
	// Config supplies slider, thumbnail and export settings. Defaults if nil.
	Config *config.Config
	// ConfigPath is watched for changes when set.
	ConfigPath string
	// DB records exports. Exporting is disabled when nil.
	DB *sql.DB
	// Thumbnails generates the filmstrip. Disabled when nil.
	Thumbnails slider.ThumbnailProvider
	// FilmRows is the filmstrip height in rows. 0 means the default.
	FilmRows int
	// Duration seeds the media duration when already known.
	Duration float64
	// Start and End seed the trimmed range in seconds.
	Start *float64
	End   *float64
	Log   *zap.Logger
}

// Model is the Bubbletea model for the trim TUI.
// It implements the tea.Model interface with Init, Update, and View methods.
type Model struct {
	videoPath string
	player    Player
	cfg       *config.Config
	log       *zap.Logger
	keys      keyMap

	slider   *slider.Controller
	selected slider.Handle
	events   *events

	// playback state from the last poll
	paused        bool
	timePos       float64
	durationKnown bool
	// loop mirrors the trimmed range into the player's A-B loop
	loop bool

	width  int
	height int
	focus  FocusTarget

	// mouse drag session
	mouseDrag  bool
	lastMouseX float64

	// thumbnails of the current generation
	thumbs        []slider.Thumbnail
	thumbsLoading bool
	filmRows      int
	spinner       spinner.Model

	db        *sql.DB
	processor *clip.Processor
	exports   []db.Export
	progress  map[string]float64

	exportForm   *huh.Form
	exportResult *forms.ExportFormResult
	quitForm     *huh.Form
	quitConfirm  bool

	result    string
	resultErr bool
	resultSeq int

	quitting bool
}

// NewModel creates the TUI model and wires the slider to the player.
func NewModel(opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	filmRows := opts.FilmRows
	if filmRows <= 0 {
		filmRows = defaultFilmRows
	}
	if opts.Thumbnails == nil {
		filmRows = 0
	}

	m := &Model{
		videoPath: opts.VideoPath,
		player:    opts.Player,
		cfg:       cfg,
		log:       log,
		keys:      defaultKeyMap(),
		events:    newEvents(),
		paused:    true,
		filmRows:  filmRows,
		db:        opts.DB,
		progress:  make(map[string]float64),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(styles.Cyan)),
		),
	}

	sliderOpts := []slider.Option{
		slider.WithConfig(cfg.Slider),
		slider.WithListener(playerListener{m: m}),
		slider.WithLogger(log),
	}
	if opts.Thumbnails != nil {
		provider := notifyingProvider{
			inner: opts.Thumbnails,
			done: func(gen uint64) {
				m.events.send(thumbsDoneMsg{generation: gen})
			},
		}
		sliderOpts = append(sliderOpts, slider.WithThumbnails(provider, func(th slider.Thumbnail) {
			m.events.send(thumbnailMsg{thumb: th})
		}))
	}
	m.slider = slider.New(sliderOpts...)

	if opts.Start != nil {
		m.slider.SetStartPosition(*opts.Start)
	}
	if opts.End != nil {
		m.slider.SetEndPosition(*opts.End)
	}
	if opts.Duration > 0 {
		m.slider.SetDuration(opts.Duration)
		m.durationKnown = true
	}
	m.slider.SetAsset(opts.VideoPath)

	if opts.DB != nil {
		m.processor = &clip.Processor{
			DB:         opts.DB,
			FFmpegPath: cfg.FFmpegPath,
			Log:        log,
			OnUpdate: func(e db.Export) {
				m.events.send(exportUpdateMsg{export: e})
			},
			OnProgress: func(id string, f float64) {
				m.events.send(exportProgressMsg{id: id, fraction: f})
			},
		}
		m.loadExports()
	}
	return m
}

// Slider exposes the controller for the CLI and tests.
func (m *Model) Slider() *slider.Controller {
	return m.slider
}

// Init initializes the model. It returns the initial commands to run.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), waitForEvent(m.events))
}

// tickCmd returns a command that sends a tickMsg after the tick interval.
func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		cmd := m.resize()
		if m.focus.formActive() {
			return m, tea.Batch(cmd, m.updateForm(msg))
		}
		return m, cmd

	case tickMsg:
		return m, tea.Batch(m.syncPlayer(), tickCmd())

	case clearResultMsg:
		if msg.seq == m.resultSeq {
			m.result = ""
			m.resultErr = false
		}
		return m, nil

	case spinner.TickMsg:
		if !m.thumbsLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case thumbnailMsg:
		m.addThumbnail(msg.thumb)
		return m, waitForEvent(m.events)

	case thumbsDoneMsg:
		if msg.generation == m.slider.ThumbnailGeneration() {
			m.thumbsLoading = false
		}
		return m, waitForEvent(m.events)

	case exportUpdateMsg:
		return m, tea.Batch(m.applyExportUpdate(msg.export), waitForEvent(m.events))

	case exportProgressMsg:
		m.progress[msg.id] = msg.fraction
		return m, waitForEvent(m.events)

	case configReloadedMsg:
		m.applyConfig(msg.cfg)
		return m, tea.Batch(m.showResult("Config reloaded", false), waitForEvent(m.events))

	case tea.BlurMsg:
		m.endMouseDrag()
		m.slider.CancelDrag()
		return m, nil

	case tea.MouseMsg:
		if m.focus != FocusSlider {
			return m, nil
		}
		return m, m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Anything else belongs to an open form (cursor blink, field focus).
	if m.focus.formActive() {
		return m, m.updateForm(msg)
	}
	return m, nil
}

// resize pushes the new track width into the slider. A width change starts
// a new thumbnail generation, so the old strip is dropped.
func (m *Model) resize() tea.Cmd {
	gen := m.slider.ThumbnailGeneration()
	m.slider.OnSizeChanged(float64(components.TimelineTrackWidth(m.width)))
	return m.thumbnailsRestarted(gen)
}

// thumbnailsRestarted resets the filmstrip when the slider started a new
// generation since gen.
func (m *Model) thumbnailsRestarted(gen uint64) tea.Cmd {
	if m.slider.ThumbnailGeneration() == gen {
		return nil
	}
	m.thumbs = nil
	if m.thumbsLoading {
		return nil
	}
	m.thumbsLoading = true
	return m.spinner.Tick
}

func (m *Model) addThumbnail(th slider.Thumbnail) {
	if th.Generation != m.slider.ThumbnailGeneration() {
		return
	}
	m.thumbs = append(m.thumbs, th)
}

// syncPlayer polls the player and feeds its clock into the slider. Reaching
// the end of the trimmed range rewinds to start, and pauses unless looping.
func (m *Model) syncPlayer() tea.Cmd {
	if m.player == nil || !m.player.IsConnected() {
		return nil
	}

	if paused, err := m.player.GetPaused(); err == nil {
		m.paused = paused
	}

	var cmd tea.Cmd
	if !m.durationKnown {
		if d, err := m.player.GetDuration(); err == nil && d > 0 {
			gen := m.slider.ThumbnailGeneration()
			m.slider.SetDuration(d)
			m.durationKnown = true
			cmd = m.thumbnailsRestarted(gen)
			m.log.Info("duration known", zap.Float64("seconds", d))
		}
	}

	pos, err := m.player.GetTimePos()
	if err != nil {
		return cmd
	}
	m.timePos = pos

	atEnd := pos >= m.slider.End()
	if m.paused && atEnd {
		return cmd
	}
	m.slider.UpdateProgress(pos)
	if atEnd && !m.paused && !m.loop {
		if err := m.player.Pause(); err == nil {
			m.paused = true
		}
	}
	return cmd
}

// applyConfig installs a reloaded configuration. Cursors stay where they
// are; the new constraints apply to future drags.
func (m *Model) applyConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	m.cfg = cfg
	m.slider.SetConfig(cfg.Slider)
	if m.processor != nil {
		m.processor.FFmpegPath = cfg.FFmpegPath
	}
	if m.selected == slider.HandleProgress && !cfg.Slider.ProgressDraggable {
		m.selected = slider.HandleStart
	}
	m.log.Info("config reloaded",
		zap.Float64("min_span", cfg.Slider.MinSpan),
		zap.Float64("max_span", cfg.Slider.MaxSpan))
}

// showResult displays text on the result line for resultDisplayDuration.
func (m *Model) showResult(text string, isErr bool) tea.Cmd {
	m.resultSeq++
	seq := m.resultSeq
	m.result = text
	m.resultErr = isErr
	return tea.Tick(resultDisplayDuration, func(time.Time) tea.Msg {
		return clearResultMsg{seq: seq}
	})
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.focus == FocusHelp {
		m.focus = FocusSlider
		return m, nil
	}
	if m.focus.formActive() {
		return m.handleFormKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return m.quit()
	case key.Matches(msg, m.keys.Quit):
		if n := m.runningExports(); n > 0 {
			m.quitConfirm = false
			m.quitForm = forms.NewConfirmQuitForm(n, &m.quitConfirm)
			m.focus = FocusConfirmQuit
			return m, m.quitForm.Init()
		}
		return m.quit()
	case key.Matches(msg, m.keys.Help):
		m.focus = FocusHelp
		return m, nil
	case key.Matches(msg, m.keys.NextHandle):
		m.selected = m.cycleHandle(1)
		return m, nil
	case key.Matches(msg, m.keys.PrevHandle):
		m.selected = m.cycleHandle(-1)
		return m, nil
	case key.Matches(msg, m.keys.Left):
		return m, m.nudge(-keyStep)
	case key.Matches(msg, m.keys.Right):
		return m, m.nudge(keyStep)
	case key.Matches(msg, m.keys.LeftFast):
		return m, m.nudge(-keyStepFast)
	case key.Matches(msg, m.keys.RightFast):
		return m, m.nudge(keyStepFast)
	case key.Matches(msg, m.keys.Play):
		return m, m.togglePlay()
	case key.Matches(msg, m.keys.Loop):
		return m, m.toggleLoop()
	case key.Matches(msg, m.keys.Export):
		return m, m.openExportForm()
	}
	return m, nil
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

// selectable lists the handles the keyboard can cycle through.
func (m *Model) selectable() []slider.Handle {
	hs := []slider.Handle{slider.HandleStart, slider.HandleEnd}
	if m.slider.Config().ProgressDraggable {
		hs = append(hs, slider.HandleProgress)
	}
	return append(hs, slider.HandleWholeRange)
}

func (m *Model) cycleHandle(dir int) slider.Handle {
	hs := m.selectable()
	idx := 0
	for i, h := range hs {
		if h == m.selected {
			idx = i
			break
		}
	}
	return hs[(idx+dir+len(hs))%len(hs)]
}

// nudge moves the selected handle by delta cells as a one-step gesture.
func (m *Model) nudge(delta float64) tea.Cmd {
	if err := m.slider.BeginDrag(m.selected); err != nil {
		if errors.Is(err, slider.ErrGestureActive) {
			return nil
		}
		return m.showResult(err.Error(), true)
	}
	_ = m.slider.ApplyDragDelta(delta)
	m.slider.EndDrag()
	return nil
}

// togglePlay plays the trimmed range from the progress cursor, rewinding to
// start when the cursor is outside the range.
func (m *Model) togglePlay() tea.Cmd {
	if m.player == nil || !m.player.IsConnected() {
		return m.showResult("Player not connected", true)
	}
	if !m.paused {
		if err := m.player.Pause(); err != nil {
			return m.showResult(fmt.Sprintf("Pause failed: %v", err), true)
		}
		m.paused = true
		return nil
	}

	pos := m.slider.Progress()
	if pos < m.slider.Start() || pos >= m.slider.End() {
		pos = m.slider.Start()
	}
	if err := m.player.Seek(pos); err != nil {
		return m.showResult(fmt.Sprintf("Seek failed: %v", err), true)
	}
	if err := m.player.Play(); err != nil {
		return m.showResult(fmt.Sprintf("Play failed: %v", err), true)
	}
	m.paused = false
	return nil
}

// toggleLoop switches the player's A-B loop over the trimmed range.
func (m *Model) toggleLoop() tea.Cmd {
	if m.player == nil || !m.player.IsConnected() {
		return m.showResult("Player not connected", true)
	}
	m.loop = !m.loop
	var err error
	if m.loop {
		err = m.player.SetABLoop(m.slider.Start(), m.slider.End())
	} else {
		err = m.player.ClearABLoop()
	}
	if err != nil {
		m.loop = !m.loop
		return m.showResult(fmt.Sprintf("Loop failed: %v", err), true)
	}
	if m.loop {
		return m.showResult("Loop on", false)
	}
	return m.showResult("Loop off", false)
}

// handleMouse maps press, motion and release on the timeline box to a drag
// gesture on the hit-tested handle.
func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	x := float64(msg.X - components.TimelineTrackColumn)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !m.onTimeline(msg.Y) || m.mouseDrag {
			return nil
		}
		// aim at the centre of the clicked cell
		h, ok := m.slider.HitTest(x+0.5, hitTolerance)
		if !ok {
			return nil
		}
		if err := m.slider.BeginDrag(h); err != nil {
			return nil
		}
		m.mouseDrag = true
		m.lastMouseX = x
		m.selected = h

	case tea.MouseActionMotion:
		if !m.mouseDrag {
			return nil
		}
		_ = m.slider.ApplyDragDelta(x - m.lastMouseX)
		m.lastMouseX = x

	case tea.MouseActionRelease:
		if !m.mouseDrag {
			return nil
		}
		_ = m.slider.ApplyDragDelta(x - m.lastMouseX)
		m.endMouseDrag()
		m.slider.EndDrag()
	}
	return nil
}

func (m *Model) endMouseDrag() {
	m.mouseDrag = false
	m.lastMouseX = 0
}

// onTimeline reports whether screen row y falls inside the timeline box.
func (m *Model) onTimeline(y int) bool {
	return y >= timelineTop && y < timelineTop+components.TimelineHeight(m.filmRows)
}

// labelWidth is the rendered width of a time label for the current duration.
func (m *Model) labelWidth() int {
	return lipgloss.Width(timeutil.FormatSeconds(m.slider.Duration()))
}

func (m *Model) title() string {
	return filepath.Base(m.videoPath)
}

// Run starts the Bubbletea program for the given options. Background
// exports and the config watcher live as long as the program.
func Run(opts Options) error {
	model := NewModel(opts)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	defer model.events.close()
	defer model.slider.Close()

	if model.processor != nil {
		model.processor.Start(ctx)
	}

	if opts.ConfigPath != "" {
		w, err := config.Watch(opts.ConfigPath, model.log, func(cfg *config.Config) {
			model.events.send(configReloadedMsg{cfg: cfg})
		})
		if err != nil {
			model.log.Warn("config watch disabled", zap.Error(err))
		} else {
			defer w.Close()
		}
	}

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
	)
	_, err := p.Run()
	return err
}
