package progress

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Indicator provides progress output for simulation runs
type Indicator struct {
	enabled bool
	out     io.Writer
	mu      sync.Mutex
	phase   string
	step    string
	start   time.Time
}

// NewIndicator creates a new progress indicator writing to stdout
func NewIndicator(enabled bool) *Indicator {
	return NewIndicatorTo(os.Stdout, enabled)
}

// NewIndicatorTo creates a progress indicator writing to out
func NewIndicatorTo(out io.Writer, enabled bool) *Indicator {
	return &Indicator{
		enabled: enabled,
		out:     out,
		start:   time.Now(),
	}
}

// Phase sets the current phase
func (p *Indicator) Phase(name string) {
	if !p.enabled {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.phase = name
	fmt.Fprintf(p.out, "\n📋 %s\n", name)
}

// Step sets the current step within a phase
func (p *Indicator) Step(name string) {
	if !p.enabled {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.step = name
	fmt.Fprintf(p.out, "  ├─ %s\n", name)
}

// SubStep shows a sub-step
func (p *Indicator) SubStep(name string) {
	if !p.enabled {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, "  │  ├─ %s\n", name)
}

// Success marks a step as successful
func (p *Indicator) Success(name string) {
	if !p.enabled {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, "  └─ ✓ %s\n", name)
}

// Error shows an error
func (p *Indicator) Error(name string, err error) {
	if !p.enabled {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, "  └─ ✗ %s: %v\n", name, err)
}

// Info shows informational message
func (p *Indicator) Info(msg string) {
	if !p.enabled {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, "  │  %s\n", msg)
}

// Tick shows one controller tick
func (p *Indicator) Tick(n int, goal, action string) {
	if !p.enabled {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if goal == "" {
		goal = "none"
	}
	if action == "" {
		action = "idle"
	}
	fmt.Fprintf(p.out, "  ├─ tick %s: goal=%s action=%s\n", formatNumber(n), goal, action)
}

// Plan shows a freshly computed plan
func (p *Indicator) Plan(goal string, actions []string, cost int) {
	if !p.enabled {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(actions) == 0 {
		fmt.Fprintf(p.out, "  │  └─ plan for %s: none\n", goal)
		return
	}
	fmt.Fprintf(p.out, "  │  └─ plan for %s: %s (cost %d)\n", goal, strings.Join(actions, " → "), cost)
}

// Elapsed returns time since start
func (p *Indicator) Elapsed() time.Duration {
	return time.Since(p.start)
}

// Summary prints final summary
func (p *Indicator) Summary(success bool, details string) {
	if !p.enabled {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	symbol := "✓"
	if !success {
		symbol = "✗"
	}

	elapsed := time.Since(p.start)
	fmt.Fprintf(p.out, "\n%s Complete in %s\n", symbol, formatDuration(elapsed))
	if details != "" {
		fmt.Fprintf(p.out, "  %s\n", details)
	}
}

func formatNumber(n int) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}

	// Add commas
	var parts []string
	for i := len(s); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		parts = append([]string{s[start:i]}, parts...)
	}
	return strings.Join(parts, ",")
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dm%ds", minutes, seconds)
}
