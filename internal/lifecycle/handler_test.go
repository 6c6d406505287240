package lifecycle

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type recordingObserver struct {
	name     string
	success  bool
	duration time.Duration
	calls    int
}

func (r *recordingObserver) OnCommandComplete(name string, success bool, duration time.Duration) {
	r.name = name
	r.success = success
	r.duration = duration
	r.calls++
}

func TestRun(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")
	tests := map[string]struct {
		fnErr       error
		wantSuccess bool
	}{
		"success": {wantSuccess: true},
		"failure": {fnErr: errBoom},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			obs := &recordingObserver{}
			err := Run(obs, "generate", func() error { return tt.fnErr })

			assert.ErrorIs(t, err, tt.fnErr)
			assert.Equal(t, 1, obs.calls)
			assert.Equal(t, "generate", obs.name)
			assert.Equal(t, tt.wantSuccess, obs.success)
			assert.GreaterOrEqual(t, obs.duration, time.Duration(0))
		})
	}
}

func TestRunNilObserver(t *testing.T) {
	t.Parallel()

	ran := false
	err := Run(nil, "pulls", func() error {
		ran = true
		return nil
	})
	assert.NoError(t, err)
	assert.True(t, ran)
}
