package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/stackco/coro"
	"github.com/stackco/coro/taskrunner"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	stateStyle = map[coro.State]lipgloss.Style{
		coro.Suspended: lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB")),
		coro.Running:   lipgloss.NewStyle().Foreground(lipgloss.Color("#90EE90")),
		coro.Normal:    lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")),
		coro.Dead:      lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")),
	}

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type namedTask struct {
	name string
	co   *coro.Coroutine
}

type interactiveModel struct {
	err      error
	runner   *taskrunner.Runner
	tasks    []namedTask
	numTasks int
	prog     progress.Model
	autoStep bool
	done     bool
}

func newInteractiveModel() *interactiveModel {
	mk := func(name string, vals []int) namedTask {
		co, err := coro.New(func(ref *coro.Ref) {
			for range vals {
				if err := ref.Yield(); err != nil {
					return
				}
			}
		})
		if err != nil {
			panic(err) // unreachable: body is non-nil and config is default
		}
		return namedTask{name: name, co: co}
	}

	tasks := []namedTask{
		mk("task-a", []int{1, 3, 5}),
		mk("task-b", []int{2, 4, 6}),
	}

	r := taskrunner.New()
	for _, t := range tasks {
		r.Add(t.co)
	}

	return &interactiveModel{
		runner:   r,
		tasks:    tasks,
		numTasks: len(tasks),
		prog:     progress.New(progress.WithDefaultGradient()),
	}
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(400*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

func (m *interactiveModel) step() tea.Cmd {
	if m.done {
		return nil
	}
	report := m.runner.Step()
	if report.Err != nil {
		m.err = report.Err
		m.done = true
		return nil
	}
	if report.Live == 0 {
		m.done = true
	}
	if m.numTasks == 0 {
		return nil
	}
	completed := m.numTasks - report.Live
	return m.prog.SetPercent(float64(completed) / float64(m.numTasks))
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case " ", "enter":
			return m, m.step()
		case "a":
			m.autoStep = !m.autoStep
			if m.autoStep {
				return m, tick()
			}
		}
	case tickMsg:
		if m.autoStep && !m.done {
			cmd := m.step()
			return m, tea.Batch(cmd, tick())
		}
	case progress.FrameMsg:
		newModel, cmd := m.prog.Update(msg)
		m.prog = newModel.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("coro task runner"))
	b.WriteString("\n\n")

	for _, t := range m.tasks {
		state := t.co.State()
		style, ok := stateStyle[state]
		if !ok {
			style = stateStyle[coro.Dead]
		}
		b.WriteString(nameStyle.Render(t.name))
		b.WriteString(": ")
		b.WriteString(style.Render(state.String()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.prog.View())
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("error: %v", m.err)))
	} else if m.done {
		b.WriteString(selectedStyle.Render("all tasks finished"))
	} else {
		b.WriteString(fmt.Sprintf("%d task(s) still live", m.runner.Len()))
	}

	b.WriteString("\n\n")
	auto := "off"
	if m.autoStep {
		auto = "on"
	}
	b.WriteString(helpStyle.Render(fmt.Sprintf("space/enter step • a auto-step (%s) • q quit", auto)))

	return b.String()
}

func runInteractive() error {
	p := tea.NewProgram(newInteractiveModel())
	_, err := p.Run()
	return err
}
