package scheduler

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/vnykmshr/gopromise/pkg/async/future"
	"github.com/vnykmshr/gopromise/pkg/async/invoker"
)

// Job is a callable fired by the scheduler. Each firing runs on the
// scheduler's invoker and produces a signal future.
type Job func(ctx context.Context)

// Entry describes a scheduled job.
type Entry struct {
	ID       string
	RunAt    time.Time
	Interval time.Duration // Zero for one-time and cron entries
	Created  time.Time
}

// Scheduler fires jobs at a time, after a delay, on an interval, or on
// a cron expression.
type Scheduler interface {
	// Basic scheduling
	Schedule(id string, job Job, runAt time.Time) error
	ScheduleAfter(id string, job Job, delay time.Duration) error
	ScheduleRepeating(id string, job Job, interval time.Duration) error

	// Cron scheduling
	ScheduleCron(id string, cronExpr string, job Job) error

	// Entry management
	Cancel(id string) bool
	CancelAll()
	List() []Entry

	// Lifecycle
	Start() error
	Stop() <-chan struct{}
}

// Config holds scheduler configuration.
type Config struct {
	// Invoker runs the firings. Nil means the scheduler owns a private
	// invoker and closes it on Stop.
	Invoker *invoker.Invoker

	// Location is the timezone for cron evaluation (default: time.Local).
	Location *time.Location

	// TickInterval is how often due entries are checked (default: 50ms).
	TickInterval time.Duration

	// MaxEntries caps the number of scheduled entries (default: 10000).
	MaxEntries int

	// Now supplies the scheduler's clock (default: time.Now). Tests
	// inject a mock clock here.
	Now func() time.Time

	// OnFire observes each firing with the future of its completion.
	OnFire func(id string, f *future.SignalFuture)
}

type entry struct {
	id           string
	job          Job
	runAt        time.Time
	interval     time.Duration
	cronSchedule cron.Schedule
	created      time.Time
}

type scheduler struct {
	inv          *invoker.Invoker
	ownInvoker   bool
	location     *time.Location
	tickInterval time.Duration
	maxEntries   int
	now          func() time.Time
	onFire       func(string, *future.SignalFuture)
	cronParser   cron.Parser

	mu      sync.RWMutex
	entries map[string]*entry
	ticker  *time.Ticker
	done    chan struct{}
	running bool
}

// New creates a scheduler with default configuration.
func New() Scheduler {
	return NewWithConfig(Config{})
}

// NewWithConfig creates a scheduler with custom configuration.
func NewWithConfig(cfg Config) Scheduler {
	inv := cfg.Invoker
	ownInvoker := false
	if inv == nil {
		inv = invoker.New(4, 100)
		ownInvoker = true
	}

	location := cfg.Location
	if location == nil {
		location = time.Local
	}

	tickInterval := cfg.TickInterval
	if tickInterval <= 0 {
		tickInterval = 50 * time.Millisecond
	}

	maxEntries := cfg.MaxEntries
	if maxEntries <= 0 {
		maxEntries = 10000
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &scheduler{
		inv:          inv,
		ownInvoker:   ownInvoker,
		location:     location,
		tickInterval: tickInterval,
		maxEntries:   maxEntries,
		now:          now,
		onFire:       cfg.OnFire,
		cronParser:   cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow),
		entries:      make(map[string]*entry),
	}
}

// validateID rejects empty, oversized, and nil-job registrations.
func validateID(id string, job Job) error {
	if id == "" {
		return fmt.Errorf("entry ID cannot be empty")
	}
	if len(id) > 255 {
		return fmt.Errorf("entry ID too long (max 255 characters)")
	}
	if job == nil {
		return fmt.Errorf("job cannot be nil")
	}
	return nil
}

// add registers e under the duplicate-id and capacity checks.
func (s *scheduler) add(e *entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[e.id]; exists {
		return fmt.Errorf("entry with ID %q already exists, use a different ID or cancel the existing entry first", e.id)
	}

	if len(s.entries) >= s.maxEntries {
		return fmt.Errorf("cannot schedule entry: maximum number of entries (%d) reached", s.maxEntries)
	}

	s.entries[e.id] = e
	return nil
}

func (s *scheduler) Schedule(id string, job Job, runAt time.Time) error {
	if err := validateID(id, job); err != nil {
		return err
	}
	if runAt.IsZero() {
		return fmt.Errorf("entry run time cannot be zero")
	}

	return s.add(&entry{
		id:      id,
		job:     job,
		runAt:   runAt,
		created: s.now(),
	})
}

func (s *scheduler) ScheduleAfter(id string, job Job, delay time.Duration) error {
	return s.Schedule(id, job, s.now().Add(delay))
}

func (s *scheduler) ScheduleRepeating(id string, job Job, interval time.Duration) error {
	if err := validateID(id, job); err != nil {
		return err
	}
	if interval <= 0 {
		return fmt.Errorf("interval must be positive, got %v", interval)
	}

	return s.add(&entry{
		id:       id,
		job:      job,
		runAt:    s.now(),
		interval: interval,
		created:  s.now(),
	})
}

func (s *scheduler) ScheduleCron(id string, cronExpr string, job Job) error {
	if err := validateID(id, job); err != nil {
		return err
	}
	if cronExpr == "" {
		return fmt.Errorf("cron expression cannot be empty")
	}

	schedule, err := s.cronParser.Parse(cronExpr)
	if err != nil {
		return fmt.Errorf("invalid cron expression: %w", err)
	}

	return s.add(&entry{
		id:           id,
		job:          job,
		runAt:        schedule.Next(s.now().In(s.location)),
		cronSchedule: schedule,
		created:      s.now(),
	})
}

func (s *scheduler) Cancel(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[id]; exists {
		delete(s.entries, id)
		return true
	}
	return false
}

func (s *scheduler) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string]*entry)
}

func (s *scheduler) List() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]Entry, 0, len(s.entries))
	for _, e := range s.entries {
		entries = append(entries, Entry{
			ID:       e.id,
			RunAt:    e.runAt,
			Interval: e.interval,
			Created:  e.created,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].RunAt.Before(entries[j].RunAt)
	})

	return entries
}

func (s *scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler already running, call Stop() first")
	}

	s.running = true
	s.ticker = time.NewTicker(s.tickInterval)
	s.done = make(chan struct{})

	go s.run(s.ticker, s.done)
	return nil
}

// Stop halts firing and returns a channel that closes once the run loop
// exited and, for an owned invoker, every in-flight firing drained. A
// scheduler with an owned invoker is finished after Stop; one with an
// injected invoker may be started again.
func (s *scheduler) Stop() <-chan struct{} {
	s.mu.Lock()
	var done chan struct{}
	if s.running {
		s.running = false
		done = s.done
		close(done)
		s.ticker.Stop()
	}
	s.mu.Unlock()

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		if s.ownInvoker {
			s.inv.Close()
		}
	}()

	return stopped
}

// run fires due entries on every tick until done closes. The ticker and
// done channel are captured per Start so a restart never observes a
// stale generation.
func (s *scheduler) run(ticker *time.Ticker, done chan struct{}) {
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			s.fireDue()
		}
	}
}

// fireDue submits every due entry to the invoker, rescheduling
// repeating and cron entries and removing one-time entries.
func (s *scheduler) fireDue() {
	now := s.now()

	s.mu.Lock()
	if len(s.entries) == 0 {
		s.mu.Unlock()
		return
	}

	due := make([]*entry, 0, len(s.entries))
	for id, e := range s.entries {
		if e.runAt.After(now) {
			continue
		}
		due = append(due, e)

		switch {
		case e.interval > 0:
			e.runAt = now.Add(e.interval)
		case e.cronSchedule != nil:
			e.runAt = e.cronSchedule.Next(now.In(s.location))
		default:
			delete(s.entries, id)
		}
	}
	s.mu.Unlock()

	for _, e := range due {
		job := e.job
		f, err := invoker.TryCall(s.inv, func(ctx context.Context) future.Void {
			job(ctx)
			return future.Void{}
		})
		if err != nil {
			// The invoker refused (closed or saturated); drop this firing
			// and keep processing the rest.
			continue
		}
		if s.onFire != nil {
			s.onFire(e.id, f)
		}
	}
}
