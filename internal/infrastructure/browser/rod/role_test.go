package rod

import (
	"context"
	"errors"
	"testing"
	"time"

	"editor-verify/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testQuery = entity.RoleQuery{Role: "button", Name: "test btn"}

func TestPollRole_DeadlineInsideLookup(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	// Lookup blocks on the CDP call until the deadline fires, as rod does.
	_, err := pollRole(ctx, testQuery, func() ([]axMatch, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})

	assert.ErrorIs(t, err, entity.ErrElementNotFound)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestPollRole_DeadlineWhileWaiting(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	calls := 0
	_, err := pollRole(ctx, testQuery, func() ([]axMatch, error) {
		calls++
		return nil, nil
	})

	assert.ErrorIs(t, err, entity.ErrElementNotFound)
	assert.GreaterOrEqual(t, calls, 1)
}

func TestPollRole_LookupErrorBeforeDeadline(t *testing.T) {
	lookupErr := errors.New("target crashed")

	_, err := pollRole(context.Background(), testQuery, func() ([]axMatch, error) {
		return nil, lookupErr
	})

	assert.ErrorIs(t, err, lookupErr)
	assert.NotErrorIs(t, err, entity.ErrElementNotFound)
}

func TestPollRole_RetriesUntilMatch(t *testing.T) {
	calls := 0
	matches, err := pollRole(context.Background(), testQuery, func() ([]axMatch, error) {
		calls++
		if calls < 3 {
			return nil, nil
		}
		return []axMatch{{role: "button", name: "test btn"}}, nil
	})

	require.NoError(t, err)
	assert.Len(t, matches, 1)
	assert.Equal(t, 3, calls)
}

func TestPageAdapter_ClickByRole_NotFoundShortTimeouts(t *testing.T) {
	server := newHTMLServer(t, `<!DOCTYPE html><html><body><button>other</button></body></html>`)
	page := newTestPage(t, 5*time.Second)
	ctx := context.Background()

	require.NoError(t, page.Navigate(ctx, server.URL))

	for timeout := 5 * time.Millisecond; timeout < 300*time.Millisecond; timeout += 7 * time.Millisecond {
		page.timeout = timeout
		_, err := page.ClickByRole(ctx, testQuery)
		require.ErrorIs(t, err, entity.ErrElementNotFound, "timeout %s", timeout)
	}
}
