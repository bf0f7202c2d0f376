package form

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artconsole/internal/transport"
)

type testDraft struct {
	Name string `validate:"required"`
	Bio  string
}

func TestEditor_CreateStartsEditing(t *testing.T) {
	e := NewCreate(&testDraft{Name: "Jane"}, func(ctx context.Context, d *testDraft) error { return nil })
	assert.Equal(t, Editing, e.State())
	assert.Empty(t, e.Message())
}

func TestEditor_LoadSuccess(t *testing.T) {
	e := NewEdit(
		func(ctx context.Context) (*testDraft, error) { return &testDraft{Name: "Jane"}, nil },
		func(ctx context.Context, d *testDraft) error { return nil },
	)
	assert.Equal(t, Loading, e.State())

	require.NoError(t, e.Load(context.Background()))
	assert.Equal(t, Editing, e.State())
	assert.Equal(t, "Jane", e.Draft().Name)
}

func TestEditor_LoadFailureIsTerminal(t *testing.T) {
	e := NewEdit(
		func(ctx context.Context) (*testDraft, error) {
			return nil, &transport.APIError{Status: 404, Message: "artist not found"}
		},
		func(ctx context.Context, d *testDraft) error { return nil },
	)

	require.Error(t, e.Load(context.Background()))
	assert.Equal(t, Failed, e.State())
	assert.Equal(t, "artist not found", e.Message())

	assert.ErrorIs(t, e.Submit(context.Background()), ErrNotEditable)
	assert.ErrorIs(t, e.Update(func(d **testDraft) {}), ErrNotEditable)
}

func TestEditor_SubmitSuccess(t *testing.T) {
	var submitted *testDraft
	e := NewCreate(&testDraft{Name: "Jane"}, func(ctx context.Context, d *testDraft) error {
		submitted = d
		return nil
	})

	require.NoError(t, e.Submit(context.Background()))
	assert.Equal(t, Done, e.State())
	require.NotNil(t, submitted)
	assert.Equal(t, "Jane", submitted.Name)
}

func TestEditor_SubmitFailureReturnsToEditing(t *testing.T) {
	e := NewCreate(&testDraft{Name: "Jane", Bio: "painter"}, func(ctx context.Context, d *testDraft) error {
		return &transport.APIError{
			Status:  422,
			Message: "The given data was invalid.",
			Fields: []transport.FieldError{
				{Field: "artist_name", Messages: []string{"invalid"}},
				{Field: "bio", Messages: []string{"too short"}},
			},
		}
	})

	require.Error(t, e.Submit(context.Background()))
	assert.Equal(t, Editing, e.State())
	assert.Equal(t, "invalid, too short", e.Message())
	assert.Equal(t, "painter", e.Draft().Bio, "draft survives a failed submit")
}

func TestEditor_SubmitExclusive(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	e := NewCreate(&testDraft{Name: "Jane"}, func(ctx context.Context, d *testDraft) error {
		close(started)
		<-release
		return nil
	})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = e.Submit(context.Background())
	}()

	<-started
	assert.Equal(t, Submitting, e.State())
	assert.ErrorIs(t, e.Submit(context.Background()), ErrSubmitInFlight)
	assert.ErrorIs(t, e.Update(func(d **testDraft) {}), ErrNotEditable)

	close(release)
	wg.Wait()
	assert.Equal(t, Done, e.State())
	assert.ErrorIs(t, e.Submit(context.Background()), ErrNotEditable, "done editors accept nothing further")
}

func TestEditor_AdvisoryValidation(t *testing.T) {
	submitCalled := false
	e := NewCreate(&testDraft{}, func(ctx context.Context, d *testDraft) error {
		submitCalled = true
		return nil
	})

	err := e.Submit(context.Background())
	require.Error(t, err)
	assert.False(t, submitCalled, "invalid drafts never reach the server")
	assert.Equal(t, Editing, e.State())
	assert.Contains(t, e.Message(), "name is required")
}

func TestEditor_Update(t *testing.T) {
	e := NewCreate(&testDraft{Name: "Jane"}, func(ctx context.Context, d *testDraft) error { return nil })
	require.NoError(t, e.Update(func(d **testDraft) { (*d).Bio = "sculptor" }))
	assert.Equal(t, "sculptor", e.Draft().Bio)
}

func TestEditor_NonAPIErrorMessage(t *testing.T) {
	e := NewCreate(&testDraft{Name: "Jane"}, func(ctx context.Context, d *testDraft) error {
		return errors.New("connection refused")
	})
	require.Error(t, e.Submit(context.Background()))
	assert.Equal(t, "connection refused", e.Message())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "loading", Loading.String())
	assert.Equal(t, "editing", Editing.String())
	assert.Equal(t, "submitting", Submitting.String())
	assert.Equal(t, "failed", Failed.String())
	assert.Equal(t, "done", Done.String())
}
