package operations_test

import (
	"context"
	"testing"

	"github.com/joshyorko/sbomdesk/operations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGenerationCancelsOlder(t *testing.T) {
	must := require.New(t)
	generations := &operations.Generations{}

	first, firstTicket := generations.Begin(context.Background())
	must.True(generations.IsCurrent(firstTicket))

	second, secondTicket := generations.Begin(context.Background())
	must.ErrorIs(first.Err(), context.Canceled)
	must.NoError(second.Err())
	must.False(generations.IsCurrent(firstTicket))
	must.True(generations.IsCurrent(secondTicket))

	generations.Done(firstTicket)
	must.NoError(second.Err())

	generations.Done(secondTicket)
	must.ErrorIs(second.Err(), context.Canceled)
	must.True(generations.IsCurrent(secondTicket))
}

func TestAbandonInvalidatesTicket(t *testing.T) {
	generations := &operations.Generations{}

	ctx, ticket := generations.Begin(context.Background())
	generations.Abandon()

	assert.ErrorIs(t, ctx.Err(), context.Canceled)
	assert.False(t, generations.IsCurrent(ticket))
	assert.False(t, generations.IsCurrent(0))
}
