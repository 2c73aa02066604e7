package cart

import (
	"sync"
	"time"
)

// DefaultPulseDuration is how long IsCounting stays true after the last addition.
const DefaultPulseDuration = 300 * time.Millisecond

// pulse is a debounced boolean: Trigger sets it and (re)schedules the reset,
// so it only falls back to false one duration after the last Trigger.
type pulse struct {
	mu       sync.Mutex
	duration time.Duration
	timer    *time.Timer
	gen      uint64
	active   bool
	onChange func(active bool)
}

func newPulse(d time.Duration, onChange func(active bool)) *pulse {
	return &pulse{duration: d, onChange: onChange}
}

func (p *pulse) Trigger() {
	p.mu.Lock()
	if p.timer != nil {
		p.timer.Stop()
	}
	p.gen++
	gen := p.gen
	wasActive := p.active
	p.active = true
	p.timer = time.AfterFunc(p.duration, func() { p.expire(gen) })
	p.mu.Unlock()

	if !wasActive && p.onChange != nil {
		p.onChange(true)
	}
}

// expire ignores callbacks from timers that were superseded after they fired.
func (p *pulse) expire(gen uint64) {
	p.mu.Lock()
	if gen != p.gen || !p.active {
		p.mu.Unlock()
		return
	}
	p.active = false
	p.timer = nil
	p.mu.Unlock()

	if p.onChange != nil {
		p.onChange(false)
	}
}

func (p *pulse) Active() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active
}

// Stop cancels any pending reset and clears the flag without notifying.
func (p *pulse) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	p.gen++
	p.active = false
}
