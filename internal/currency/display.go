package currency

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
)

// State of a Display.
type State int

const (
	Idle State = iota
	Converting
	Resolved
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Converting:
		return "converting"
	case Resolved:
		return "resolved"
	}
	return "unknown"
}

type request struct {
	amount decimal.Decimal
	from   string
	to     string
}

// Display holds the converted value of one price on screen. Every Update
// starts a new conversion; only the most recent one may set the value.
type Display struct {
	converter *Converter

	mu         sync.Mutex
	generation uint64
	state      State
	current    request
	value      decimal.Decimal
	done       chan struct{}
}

func NewDisplay(converter *Converter) *Display {
	done := make(chan struct{})
	close(done)

	return &Display{
		converter: converter,
		state:     Idle,
		done:      done,
	}
}

// Update converts amount from one currency into the display currency to. When
// the inputs are the same as the last request nothing happens. The returned
// channel is closed once the latest request has resolved.
func (d *Display) Update(ctx context.Context, amount decimal.Decimal, from, to string) <-chan struct{} {
	req := request{amount: amount, from: from, to: to}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state != Idle && d.current.amount.Equal(amount) && d.current.from == from && d.current.to == to {
		return d.done
	}

	d.generation++
	generation := d.generation
	d.current = req
	d.state = Converting

	// a newer request supersedes whoever was waiting on the previous one
	previous := d.done
	d.done = make(chan struct{})
	done := d.done
	select {
	case <-previous:
	default:
		defer close(previous)
	}

	go func() {
		value := d.converter.Convert(ctx, req.amount, req.from, req.to)
		d.resolve(generation, value, done)
	}()

	return done
}

func (d *Display) resolve(generation uint64, value decimal.Decimal, done chan struct{}) {
	d.mu.Lock()
	defer d.mu.Unlock()

	// stale result from a superseded request
	if generation != d.generation {
		return
	}

	d.value = value
	d.state = Resolved
	close(done)
}

// Value returns the last resolved amount and the current state.
func (d *Display) Value() (decimal.Decimal, State) {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.value, d.state
}

// Wait blocks until the latest request resolves or ctx is done, and returns
// the resolved amount. A waiter whose request is superseded keeps waiting on
// the newer one. If ctx ends first the source amount is returned.
func (d *Display) Wait(ctx context.Context) decimal.Decimal {
	for {
		d.mu.Lock()
		done := d.done
		d.mu.Unlock()

		select {
		case <-done:
			d.mu.Lock()
			state, value := d.state, d.value
			d.mu.Unlock()
			if state != Converting {
				return value
			}
		case <-ctx.Done():
			d.mu.Lock()
			defer d.mu.Unlock()
			if d.state == Resolved {
				return d.value
			}
			return d.current.amount
		}
	}
}

// ResolveAll waits for every display.
func ResolveAll(ctx context.Context, displays []*Display) []decimal.Decimal {
	values := make([]decimal.Decimal, len(displays))
	for i, d := range displays {
		values[i] = d.Wait(ctx)
	}
	return values
}
