package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/SW-Perse/artkathon/pkg/pipeline"
)

// recentLines is how many finished items the batch view keeps on screen.
const recentLines = 6

// barWidth is the progress bar width in cells.
const barWidth = 30

// spinnerFrames animate while workers are busy.
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// =============================================================================
// Messages
// =============================================================================

// itemMsg reports one finished batch item.
type itemMsg struct {
	res pipeline.ItemResult
}

// batchDoneMsg reports the end of the batch run.
type batchDoneMsg struct {
	stats *pipeline.BatchStats
	err   error
}

// tickMsg advances the spinner animation.
type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// =============================================================================
// BatchModel - Live batch progress
// =============================================================================

// BatchModel is the bubbletea model showing live batch progress.
type BatchModel struct {
	Total     int
	Done      int
	Failed    int
	CacheHits int

	Stats *pipeline.BatchStats
	Err   error

	cancel    context.CancelFunc
	cancelled bool
	finished  bool
	frame     int
	recent    []string
}

// NewBatchModel creates a batch progress model. cancel stops the underlying
// run when the user quits early.
func NewBatchModel(total int, cancel context.CancelFunc) BatchModel {
	return BatchModel{Total: total, cancel: cancel}
}

func (m BatchModel) Init() tea.Cmd {
	return tick()
}

func (m BatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			// Stop the run but keep the view open until workers drain.
			m.cancelled = true
			if m.cancel != nil {
				m.cancel()
			}
		}
	case itemMsg:
		m.Done++
		if msg.res.Err != nil {
			m.Failed++
		} else if msg.res.CacheHit {
			m.CacheHits++
		}
		m.recent = append(m.recent, itemLine(msg.res))
		if len(m.recent) > recentLines {
			m.recent = m.recent[len(m.recent)-recentLines:]
		}
	case batchDoneMsg:
		m.Stats = msg.stats
		m.Err = msg.err
		m.finished = true
		return m, tea.Quit
	case tickMsg:
		m.frame++
		return m, tick()
	}
	return m, nil
}

func (m BatchModel) View() string {
	if m.finished {
		return ""
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render("Rendering gallery"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("q quit"))
	b.WriteString("\n\n")

	spin := spinnerFrames[m.frame%len(spinnerFrames)]
	if m.cancelled {
		spin = "…"
		b.WriteString(StyleWarning.Render("stopping after current items"))
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("%s %s %d/%d",
		styleIconSpinner.Render(spin),
		progressBar(m.Done, m.Total),
		m.Done, m.Total))
	if m.Failed > 0 {
		b.WriteString(StyleWarning.Render(fmt.Sprintf("  %d failed", m.Failed)))
	}
	if m.CacheHits > 0 {
		b.WriteString(styleCached.Render(fmt.Sprintf("  %d cached", m.CacheHits)))
	}
	b.WriteString("\n\n")

	for _, line := range m.recent {
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// progressBar renders a fixed-width bar for done/total.
func progressBar(done, total int) string {
	if total < 1 {
		total = 1
	}
	filled := done * barWidth / total
	if filled > barWidth {
		filled = barWidth
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	return StyleHighlight.Render(bar)
}

// itemLine formats one finished item for the recent list.
func itemLine(res pipeline.ItemResult) string {
	if res.Err != nil {
		return styleIconError.Render(iconError) + " " + StyleDim.Render(res.Title) +
			" " + StyleWarning.Render(res.Err.Error())
	}
	line := styleIconSuccess.Render(iconSuccess) + " " + StyleValue.Render(res.Title) +
		" " + StyleDim.Render(res.Emotion+" · "+res.Colormap)
	if res.CacheHit {
		line += " " + styleCached.Render(iconCached)
	}
	return line
}
