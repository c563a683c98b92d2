package remote

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/urmzd/plasma-remote/pkg/clock"
	"github.com/urmzd/plasma-remote/pkg/tv"
)

// ZapStatus reports the progress of a zap.
type ZapStatus struct {
	ID        string `json:"id"`
	Number    int    `json:"number"`
	Name      string `json:"name,omitempty"`
	Sent      int    `json:"sent"`
	Total     int    `json:"total"`
	Done      bool   `json:"done"`
	Cancelled bool   `json:"cancelled"`
}

// ZapJob types a channel number digit by digit, then presses ENTER.
type ZapJob struct {
	ID     string
	Number int
	Name   string

	d      *Dispatcher
	keys   []tv.Key
	sent   int
	timer  clock.Timer
	ctx    context.Context
	cancel context.CancelFunc

	done chan struct{}
	once sync.Once
	err  error
}

// Zap changes to channel number by pressing its digits 400ms apart, then
// ENTER 300ms after the last digit's gap. A running zap is cancelled.
// name is only used for the notification.
func (d *Dispatcher) Zap(number int, name string) (*ZapJob, error) {
	keys, err := tv.DigitsOf(number)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil, ErrClosed
	}
	d.cancelZapLocked()

	ctx, cancel := context.WithCancel(d.ctx)
	job := &ZapJob{
		ID:     uuid.NewString(),
		Number: number,
		Name:   name,
		d:      d,
		keys:   keys,
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	d.zap = job

	label := name
	if label == "" {
		label = strconv.Itoa(number)
	}
	log.Info().Str("zap", job.ID).Int("channel", number).Str("name", name).Msg("Zap started")
	d.notifier.Show(fmt.Sprintf("Zap to %s...", label))

	d.stepZapLocked(job)
	return job, nil
}

// stepZapLocked presses the job's next key and arms the following step.
func (d *Dispatcher) stepZapLocked(job *ZapJob) {
	if job.ctx.Err() != nil {
		d.finishZapLocked(job, ErrZapCancelled)
		return
	}

	if job.sent == len(job.keys) {
		d.dispatchLocked(tv.KeyEnter, dispatchOptions{})
		d.finishZapLocked(job, nil)
		return
	}

	key := job.keys[job.sent]
	job.sent++
	d.dispatchLocked(key, dispatchOptions{})

	delay := d.timings.ZapDigit
	if job.sent == len(job.keys) {
		delay += d.timings.ZapEnter
	}
	job.timer = d.clock.AfterFunc(delay, func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		if job.finished() {
			return
		}
		d.stepZapLocked(job)
	})

	d.publishZapLocked(job)
}

func (d *Dispatcher) finishZapLocked(job *ZapJob, err error) {
	if job.finished() {
		return
	}
	if job.timer != nil {
		job.timer.Stop()
		job.timer = nil
	}
	job.cancel()
	job.finish(err)

	if d.zap == job {
		d.zap = nil
	}
	if err != nil {
		// Drop the digits the zap already typed
		if d.entry.Pending() {
			d.entry.Reset()
			d.publishEntryLocked()
		}
		log.Info().Str("zap", job.ID).Err(err).Msg("Zap stopped")
	}
	d.publishZapLocked(job)
}

func (d *Dispatcher) cancelZapLocked() {
	if d.zap != nil {
		d.finishZapLocked(d.zap, ErrZapCancelled)
	}
}

func (d *Dispatcher) publishZapLocked(job *ZapJob) {
	status := job.statusLocked()
	d.bus.Publish(Event{Type: EventZap, Zap: &status})
}

// CurrentZap returns the running zap, if any.
func (d *Dispatcher) CurrentZap() *ZapJob {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.zap
}

// Cancel stops the zap. Keys already pressed stay pressed.
func (j *ZapJob) Cancel() {
	j.d.mu.Lock()
	defer j.d.mu.Unlock()
	j.d.finishZapLocked(j, ErrZapCancelled)
}

// Done is closed once the zap completes or is cancelled.
func (j *ZapJob) Done() <-chan struct{} {
	return j.done
}

// Err returns nil for a completed zap and ErrZapCancelled otherwise. It is
// only meaningful after Done is closed.
func (j *ZapJob) Err() error {
	select {
	case <-j.done:
		return j.err
	default:
		return nil
	}
}

// Wait blocks until the zap ends or ctx is done.
func (j *ZapJob) Wait(ctx context.Context) error {
	select {
	case <-j.done:
		return j.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Status reports the zap's progress.
func (j *ZapJob) Status() ZapStatus {
	j.d.mu.Lock()
	defer j.d.mu.Unlock()
	return j.statusLocked()
}

func (j *ZapJob) statusLocked() ZapStatus {
	done := j.finished()
	return ZapStatus{
		ID:        j.ID,
		Number:    j.Number,
		Name:      j.Name,
		Sent:      j.sent,
		Total:     len(j.keys),
		Done:      done,
		Cancelled: done && j.err != nil,
	}
}

func (j *ZapJob) finish(err error) {
	j.once.Do(func() {
		j.err = err
		close(j.done)
	})
}

func (j *ZapJob) finished() bool {
	select {
	case <-j.done:
		return true
	default:
		return false
	}
}
