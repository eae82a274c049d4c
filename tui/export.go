package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"go.uber.org/zap"

	"github.com/user/video-trim-cli/clip"
	"github.com/user/video-trim-cli/db"
	"github.com/user/video-trim-cli/tui/forms"
)

// openExportForm opens the export form prefilled from the config and the
// current trimmed range.
func (m *Model) openExportForm() tea.Cmd {
	if m.processor == nil {
		return m.showResult("Export unavailable: no history database", true)
	}
	if m.slider.Duration() <= 0 {
		return m.showResult("Export unavailable: duration not known yet", true)
	}

	start, end := m.slider.Start(), m.slider.End()
	m.exportResult = &forms.ExportFormResult{
		OutputPath: clip.OutputPath(m.videoPath, m.cfg.Export.OutputDir, start, end, m.cfg.Export.Reencode),
		Reencode:   m.cfg.Export.Reencode,
		Confirm:    true,
	}
	m.exportForm = forms.NewExportForm(m.videoPath, start, end, m.exportResult)
	m.focus = FocusExportForm
	return m.exportForm.Init()
}

// handleFormKey routes a key to the open form. Esc closes the form without
// submitting.
func (m *Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m.quit()
	}
	if key.Matches(msg, m.keys.Cancel) {
		m.closeForms()
		return m, nil
	}
	return m, m.updateForm(msg)
}

// updateForm forwards msg to the open form and acts on completion.
func (m *Model) updateForm(msg tea.Msg) tea.Cmd {
	switch m.focus {
	case FocusExportForm:
		form, cmd := m.exportForm.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.exportForm = f
		}
		switch m.exportForm.State {
		case huh.StateCompleted:
			result := *m.exportResult
			m.closeForms()
			if !result.Confirm {
				return nil
			}
			return m.enqueueExport(result)
		case huh.StateAborted:
			m.closeForms()
			return nil
		}
		return cmd

	case FocusConfirmQuit:
		form, cmd := m.quitForm.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.quitForm = f
		}
		switch m.quitForm.State {
		case huh.StateCompleted:
			quit := m.quitConfirm
			m.closeForms()
			if quit {
				m.quitting = true
				return tea.Quit
			}
			return nil
		case huh.StateAborted:
			m.closeForms()
			return nil
		}
		return cmd
	}
	return nil
}

func (m *Model) closeForms() {
	m.exportForm = nil
	m.exportResult = nil
	m.quitForm = nil
	m.focus = FocusSlider
}

// enqueueExport queues the current trimmed range for the background worker.
func (m *Model) enqueueExport(result forms.ExportFormResult) tea.Cmd {
	job := clip.Job{
		VideoPath:  m.videoPath,
		Start:      m.slider.Start(),
		End:        m.slider.End(),
		OutputPath: strings.TrimSpace(result.OutputPath),
		Reencode:   result.Reencode,
	}
	if err := job.Validate(); err != nil {
		return m.showResult(err.Error(), true)
	}
	id, err := m.processor.Enqueue(job)
	if err != nil {
		m.log.Error("failed to queue export", zap.Error(err))
		return m.showResult(fmt.Sprintf("Export failed: %v", err), true)
	}
	if e, err := db.SelectExportByID(m.db, id); err == nil {
		m.upsertExport(*e)
	}
	return m.showResult("Export queued: "+filepath.Base(job.OutputPath), false)
}

// loadExports reads the recent exports of the current video.
func (m *Model) loadExports() {
	exports, err := db.SelectExports(m.db, m.videoPath, recentExports)
	if err != nil {
		m.log.Warn("failed to load exports", zap.Error(err))
		return
	}
	m.exports = exports
}

// applyExportUpdate records a status change and reports finished exports.
func (m *Model) applyExportUpdate(e db.Export) tea.Cmd {
	m.upsertExport(e)
	switch e.Status {
	case db.StatusComplete:
		delete(m.progress, e.ID)
		return m.showResult("Exported "+filepath.Base(e.OutputPath), false)
	case db.StatusError:
		delete(m.progress, e.ID)
		return m.showResult(fmt.Sprintf("Export failed: %s", e.Error), true)
	}
	return nil
}

// upsertExport replaces the row with the same ID or prepends it, keeping
// at most recentExports rows.
func (m *Model) upsertExport(e db.Export) {
	if e.VideoPath != m.videoPath {
		return
	}
	for i := range m.exports {
		if m.exports[i].ID == e.ID {
			m.exports[i] = e
			return
		}
	}
	m.exports = append([]db.Export{e}, m.exports...)
	if len(m.exports) > recentExports {
		m.exports = m.exports[:recentExports]
	}
}

// runningExports counts exports that are still queued or processing.
func (m *Model) runningExports() int {
	n := 0
	for _, e := range m.exports {
		if !e.Done() {
			n++
		}
	}
	return n
}
