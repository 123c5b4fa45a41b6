package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
)

// ProgressBar wraps the progressbar library with our custom styling
type ProgressBar struct {
	bar   *progressbar.ProgressBar
	phase string
	total int
}

// Phase represents a stage of the generation run
type Phase string

const (
	PhaseZipDB      Phase = "Zip DB"
	PhaseRemoteZips Phase = "Remote Zips"
	PhaseExtracting Phase = "Extracting"
	PhaseExporting  Phase = "Exporting"
)

// GenerationPhases lists the phases of a generation run in order
var GenerationPhases = []Phase{PhaseZipDB, PhaseRemoteZips, PhaseExtracting, PhaseExporting}

// NewProgressBar creates a new progress bar for a specific phase
func NewProgressBar(phase Phase, total int) *ProgressBar {
	return NewProgressBarWithOutput(phase, total, os.Stdout)
}

// NewProgressBarWithOutput creates a new progress bar with custom output
func NewProgressBarWithOutput(phase Phase, total int, output io.Writer) *ProgressBar {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(output),
		progressbar.OptionSetDescription(fmt.Sprintf("[%s]", phase)),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionEnableColorCodes(true),
	)

	return &ProgressBar{
		bar:   bar,
		phase: string(phase),
		total: total,
	}
}

// Increment increments the progress bar by 1
func (pb *ProgressBar) Increment() error {
	return pb.bar.Add(1)
}

// Finish completes the progress bar
func (pb *ProgressBar) Finish() error {
	return pb.bar.Finish()
}

// Describe updates the description of the progress bar
func (pb *ProgressBar) Describe(description string) {
	pb.bar.Describe(fmt.Sprintf("[%s] %s", pb.phase, description))
}

// Phase returns the name of the phase this bar tracks
func (pb *ProgressBar) Phase() string {
	return pb.phase
}

// Pipeline represents a multi-phase progress tracking system
type Pipeline struct {
	phases   []Phase
	current  int
	bar      *ProgressBar
	disabled bool
	output   io.Writer
}

// NewPipeline creates a new pipeline progress tracker writing to stdout
func NewPipeline(phases []Phase) *Pipeline {
	return NewPipelineWithOutput(phases, os.Stdout)
}

// NewPipelineWithOutput creates a new pipeline with custom output
func NewPipelineWithOutput(phases []Phase, output io.Writer) *Pipeline {
	return &Pipeline{
		phases:  phases,
		current: -1,
		output:  output,
	}
}

// Disable disables the progress bar output
func (p *Pipeline) Disable() {
	p.disabled = true
}

// NextPhase finishes the current phase and returns the bar of the next one.
// It returns nil once every phase has been started.
func (p *Pipeline) NextPhase(total int) *ProgressBar {
	p.Finish()

	p.current++
	if p.current >= len(p.phases) {
		p.bar = nil
		return nil
	}

	out := p.output
	if p.disabled {
		out = io.Discard
	}
	p.bar = NewProgressBarWithOutput(p.phases[p.current], total, out)
	return p.bar
}

// Finish completes the running phase
func (p *Pipeline) Finish() {
	if p.bar != nil {
		p.bar.Finish()
	}
}

// PrintSummary prints a summary line unless output is disabled
func (p *Pipeline) PrintSummary(message string) {
	if !p.disabled {
		fmt.Fprintln(p.output, message)
	}
}
