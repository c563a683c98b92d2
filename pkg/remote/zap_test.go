package remote

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urmzd/plasma-remote/pkg/tv"
)

func TestZap_PacesDigitsThenEnter(t *testing.T) {
	d, c, sender := newTestDispatcher(t)
	press(t, d, tv.KeyPower)

	job, err := d.Zap(15, "BFM TV")
	require.NoError(t, err)
	assert.Len(t, job.ID, 36)
	assert.Equal(t, "1", d.Snapshot().Entry.Buffer)

	c.Advance(400 * time.Millisecond)
	assert.Equal(t, "15", d.Snapshot().Entry.Buffer)
	assert.Equal(t, 2, job.Status().Sent)

	// ENTER follows the last digit after 400ms + 300ms
	c.Advance(699 * time.Millisecond)
	assert.Equal(t, 1, d.State().Channel)

	c.Advance(time.Millisecond)
	assert.Equal(t, 15, d.State().Channel)

	require.NoError(t, job.Wait(context.Background()))
	assert.NoError(t, job.Err())
	assert.True(t, job.Status().Done)
	assert.Nil(t, d.CurrentZap())

	var keys []tv.Key
	for _, f := range sender.Calls() {
		keys = append(keys, f.Key)
	}
	assert.Equal(t, []tv.Key{tv.KeyPower, tv.Key1, tv.Key5, tv.KeyEnter}, keys)
}

func TestZap_SingleDigit(t *testing.T) {
	d, c, _ := newTestDispatcher(t)
	press(t, d, tv.KeyPower)

	job, err := d.Zap(7, "")
	require.NoError(t, err)

	c.Advance(700 * time.Millisecond)
	assert.Equal(t, 7, d.State().Channel)
	assert.NoError(t, job.Wait(context.Background()))
}

func TestZap_CancelledByPower(t *testing.T) {
	d, c, sender := newTestDispatcher(t)
	press(t, d, tv.KeyPower)

	job, err := d.Zap(123, "")
	require.NoError(t, err)
	c.Advance(400 * time.Millisecond)

	press(t, d, tv.KeyPower)
	assert.True(t, errors.Is(job.Wait(context.Background()), ErrZapCancelled))
	assert.True(t, job.Status().Cancelled)

	before := len(sender.Calls())
	c.Advance(5 * time.Second)
	assert.Len(t, sender.Calls(), before, "no key may be sent after cancellation")
	assert.False(t, d.State().IsOn)
	assert.Equal(t, 1, d.State().Channel)
}

func TestZap_NewZapSupersedes(t *testing.T) {
	d, c, _ := newTestDispatcher(t)
	press(t, d, tv.KeyPower)

	first, err := d.Zap(12, "")
	require.NoError(t, err)
	second, err := d.Zap(7, "")
	require.NoError(t, err)

	assert.True(t, errors.Is(first.Err(), ErrZapCancelled))
	assert.Equal(t, "7", d.Snapshot().Entry.Buffer)
	assert.Same(t, second, d.CurrentZap())

	c.Advance(time.Second)
	assert.Equal(t, 7, d.State().Channel)
	assert.NoError(t, second.Err())
}

func TestZap_Cancel(t *testing.T) {
	d, c, _ := newTestDispatcher(t)
	press(t, d, tv.KeyPower)

	job, err := d.Zap(45, "")
	require.NoError(t, err)
	job.Cancel()
	job.Cancel()

	assert.False(t, d.Snapshot().Entry.Pending)
	c.Advance(5 * time.Second)
	assert.Equal(t, 1, d.State().Channel)
	assert.True(t, errors.Is(job.Err(), ErrZapCancelled))
}

func TestZap_InvalidNumber(t *testing.T) {
	d, _, _ := newTestDispatcher(t)
	_, err := d.Zap(0, "")
	assert.True(t, errors.Is(err, tv.ErrInvalidChannel))
}

func TestZap_WaitHonoursContext(t *testing.T) {
	d, _, _ := newTestDispatcher(t)
	press(t, d, tv.KeyPower)

	job, err := d.Zap(15, "")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.True(t, errors.Is(job.Wait(ctx), context.Canceled))
	assert.NoError(t, job.Err(), "Err is nil while the zap is running")
}
