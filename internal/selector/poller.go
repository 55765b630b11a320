package selector

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/san-kum/atmos/internal/weather"
)

const DefaultInterval = time.Hour

// Fetcher returns current conditions at a location. *weather.Client
// satisfies it.
type Fetcher interface {
	Current(ctx context.Context, lat, long float64) (weather.Current, error)
}

type Poller struct {
	Fetcher   Fetcher
	Latitude  float64
	Longitude float64
	Interval  time.Duration
	// Now defaults to time.Now.
	Now func() time.Time

	mu        sync.Mutex
	state     State
	simulated *time.Time
	forced    *Condition
}

func NewPoller(f Fetcher, lat, long float64, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{
		Fetcher:   f,
		Latitude:  lat,
		Longitude: long,
		Interval:  interval,
		state:     State{Day: true},
	}
}

func (p *Poller) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

// State returns the last computed state.
func (p *Poller) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// SimulateDate pins the calendar to date. A zero time restores the clock.
func (p *Poller) SimulateDate(date time.Time) State {
	p.mu.Lock()
	defer p.mu.Unlock()
	if date.IsZero() {
		p.simulated = nil
	} else {
		p.simulated = &date
	}
	p.updateSeason()
	return p.state
}

// Force overrides the fetched condition until Unforce is called.
func (p *Poller) Force(c Condition) State {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.forced = &c
	p.state.Condition = c
	return p.state
}

func (p *Poller) Unforce() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.forced = nil
}

func (p *Poller) updateSeason() {
	date := p.now()
	if p.simulated != nil {
		date = *p.simulated
	}
	p.state.Date = date
	p.state.Season = SeasonFor(date)
}

// Refresh fetches the weather once and recomputes the season. A failed
// fetch keeps the previous condition and guesses day from the hour.
func (p *Poller) Refresh(ctx context.Context) State {
	var (
		cur weather.Current
		err error
	)
	if p.Fetcher != nil {
		cur, err = p.Fetcher.Current(ctx, p.Latitude, p.Longitude)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	switch {
	case p.Fetcher == nil:
		p.state.Day = dayByHour(p.now())
	case err != nil:
		log.Printf("weather fetch failed: %v", err)
		p.state.Day = dayByHour(p.now())
	default:
		temp := cur.TemperatureF
		p.state.TempF = &temp
		p.state.Day = cur.Day()
		p.state.Condition = MapWMOCode(cur.WeatherCode)
	}
	if p.forced != nil {
		p.state.Condition = *p.forced
	}
	p.updateSeason()
	return p.state
}

// Run refreshes immediately and then every Interval, handing each state to
// publish. It returns when ctx is done.
func (p *Poller) Run(ctx context.Context, publish func(State)) error {
	publish(p.Refresh(ctx))

	interval := p.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			publish(p.Refresh(ctx))
		}
	}
}

func dayByHour(t time.Time) bool {
	h := t.Hour()
	return h > 6 && h < 20
}
