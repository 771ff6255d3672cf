package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/pixlens/internal/notify"
	"github.com/jask/pixlens/internal/upload"
)

const browserRows = 12

func (a *App) View() string {
	header := headerStyle.Render("pixlens · image analysis")
	if a.width > 0 {
		header = headerStyle.Width(a.width).Render("pixlens · image analysis")
	}

	var body string
	switch a.widget.Phase() {
	case upload.PhaseIdle:
		body = a.renderUploadSurface()
	default:
		body = a.renderPreviewSurface()
	}

	sections := []string{header}
	if notes := a.renderNotifications(); notes != "" {
		sections = append(sections, notes)
	}
	sections = append(sections, body, a.renderFooter())
	base := strings.Join(sections, "\n")

	width, height := a.width, a.height
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 24
	}
	if a.showBrowser {
		return renderPopup(base, a.renderBrowser(), width, height)
	}
	if a.widget.Phase() == upload.PhaseAnalyzing {
		return renderPopup(base, a.spin.View()+" analyzing image…", width, height)
	}
	return base
}

func (a *App) renderUploadSurface() string {
	style := dropZoneStyle
	if a.dropInput.Value() != "" {
		style = dropZoneActiveStyle
	}
	content := strings.Join([]string{
		titleStyle.Render("Stage an image"),
		"",
		a.dropInput.View(),
		"",
		hintStyle.Render("png, jpeg, gif or webp, up to 10 MiB"),
	}, "\n")
	zone := style.Render(content)
	if a.width > 0 {
		return lipgloss.Place(a.width, lipgloss.Height(zone), lipgloss.Center, lipgloss.Top, zone)
	}
	return zone
}

func (a *App) renderPreviewSurface() string {
	f, ok := a.widget.File()
	if !ok {
		return ""
	}

	var factLines []string
	factLines = append(factLines, titleStyle.Render(f.Name))
	if a.facts != nil {
		for _, line := range a.facts.Lines() {
			factLines = append(factLines, factStyle.Render(line))
		}
	} else {
		factLines = append(factLines, hintStyle.Render("rendering preview…"))
	}
	info := strings.Join(factLines, "\n")

	var previewBody string
	if a.thumb != "" {
		previewBody = lipgloss.JoinHorizontal(lipgloss.Top, a.thumb, "  ", info)
	} else {
		previewBody = info
	}
	out := sectionStyle.Render(previewBody)

	if text, ok := a.widget.Result(); ok && text != "" {
		results := titleStyle.Render("Analysis") + "\n" + a.results.View()
		out += "\n" + sectionStyle.Render(results)
	}
	return out
}

func (a *App) renderNotifications() string {
	items := a.notes.Items()
	if len(items) == 0 {
		return ""
	}
	lines := make([]string, 0, len(items))
	for _, n := range items {
		var style lipgloss.Style
		switch n.Level {
		case notify.LevelSuccess:
			style = notifySuccessStyle
		case notify.LevelError:
			style = notifyErrorStyle
		default:
			style = notifyInfoStyle
		}
		lines = append(lines, style.Render(n.Message))
	}
	return strings.Join(lines, "\n")
}

func (a *App) renderBrowser() string {
	out := titleStyle.Render("Select image") + "\n"
	out += hintStyle.Render(a.browser.Dir()) + "\n"
	if q := a.browser.Query(); q != "" {
		out += "filter: " + q + "\n"
	}
	entries := a.browser.Entries()
	if len(entries) == 0 {
		out += hintStyle.Render("(no matching images)")
		return out
	}
	cursor := a.browser.Cursor()
	for i, e := range entries {
		if i >= browserRows {
			out += hintStyle.Render(fmt.Sprintf("… %d more", len(entries)-browserRows))
			break
		}
		line := fmt.Sprintf("%-32s %8s", e.Name, fmtBytes(e.Size))
		if i == cursor {
			out += cursorRowStyle.Render("▶ "+line) + "\n"
		} else {
			out += "  " + line + "\n"
		}
	}
	out += "\n" + a.renderHelp(a.keys.browserHelp())
	return out
}

func (a *App) renderFooter() string {
	var bindings []key.Binding
	if a.widget.Phase() == upload.PhaseIdle {
		bindings = a.keys.idleHelp()
	} else {
		bindings = a.keys.previewHelp()
	}
	text := a.renderHelp(bindings)
	if a.width > 0 {
		return footerStyle.Width(a.width).Render(text)
	}
	return footerStyle.Render(text)
}

func (a *App) renderHelp(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		if h.Key == "" && h.Desc == "" {
			continue
		}
		parts = append(parts, keyStyle.Render(h.Key)+" "+h.Desc)
	}
	return strings.Join(parts, "  ")
}

func fmtBytes(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1fM", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1fK", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%dB", n)
	}
}
