package form

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"artconsole/internal/transport"
)

// State is the editor lifecycle. Transitions:
//
//	Loading  -> Editing     fetch succeeded (create mode starts here)
//	Loading  -> Failed      fetch failed; terminal, nothing to edit
//	Editing  -> Submitting  user submitted
//	Submitting -> Editing   submit failed; draft preserved, message set
//	Submitting -> Done      submit succeeded; caller navigates away
type State int

const (
	Loading State = iota
	Editing
	Submitting
	Failed
	Done
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Editing:
		return "editing"
	case Submitting:
		return "submitting"
	case Failed:
		return "failed"
	case Done:
		return "done"
	}
	return "unknown"
}

var (
	// ErrSubmitInFlight: a submit was requested while one is already
	// outstanding for this editor.
	ErrSubmitInFlight = errors.New("form: submit already in flight")
	// ErrNotEditable: the editor is not in a state that accepts the event.
	ErrNotEditable = errors.New("form: editor not in editable state")
)

var validate = validator.New()

// Editor drives one create/edit screen over a draft of type D. All
// I/O goes through the fetch and submit callbacks, so the machine is
// testable without a UI runtime.
type Editor[D any] struct {
	mu      sync.Mutex
	state   State
	draft   D
	message string

	fetch  func(ctx context.Context) (D, error)
	submit func(ctx context.Context, draft D) error
}

// NewCreate returns an editor in Editing with a blank draft.
func NewCreate[D any](draft D, submit func(ctx context.Context, draft D) error) *Editor[D] {
	return &Editor[D]{state: Editing, draft: draft, submit: submit}
}

// NewEdit returns an editor in Loading; call Load before editing.
func NewEdit[D any](fetch func(ctx context.Context) (D, error), submit func(ctx context.Context, draft D) error) *Editor[D] {
	return &Editor[D]{state: Loading, fetch: fetch, submit: submit}
}

func (e *Editor[D]) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Message returns the inline error message, if any.
func (e *Editor[D]) Message() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.message
}

// Draft returns a copy of the current draft.
func (e *Editor[D]) Draft() D {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.draft
}

// Update mutates the draft. Only legal while Editing.
func (e *Editor[D]) Update(fn func(draft *D)) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != Editing {
		return ErrNotEditable
	}
	fn(&e.draft)
	return nil
}

// Load fetches the existing entity and enters Editing. A fetch failure
// is terminal: the editor moves to Failed and the error is returned.
func (e *Editor[D]) Load(ctx context.Context) error {
	e.mu.Lock()
	if e.state != Loading {
		e.mu.Unlock()
		return ErrNotEditable
	}
	e.mu.Unlock()

	draft, err := e.fetch(ctx)

	e.mu.Lock()
	defer e.mu.Unlock()
	if err != nil {
		e.state = Failed
		e.message = errorMessage(err)
		return err
	}
	e.draft = draft
	e.state = Editing
	return nil
}

// Submit validates the draft and runs the submit callback. At most one
// submit is in flight per editor; a concurrent call gets
// ErrSubmitInFlight without issuing a request. On failure the editor
// returns to Editing with the draft intact and the server's message
// flattened for inline display.
func (e *Editor[D]) Submit(ctx context.Context) error {
	e.mu.Lock()
	switch e.state {
	case Submitting:
		e.mu.Unlock()
		return ErrSubmitInFlight
	case Editing:
	default:
		e.mu.Unlock()
		return ErrNotEditable
	}

	if msg := advisoryValidate(e.draft); msg != "" {
		e.message = msg
		e.mu.Unlock()
		return errors.New(msg)
	}

	e.state = Submitting
	e.message = ""
	draft := e.draft
	e.mu.Unlock()

	err := e.submit(ctx, draft)

	e.mu.Lock()
	defer e.mu.Unlock()
	if err != nil {
		e.state = Editing
		e.message = errorMessage(err)
		return err
	}
	e.state = Done
	return nil
}

// advisoryValidate runs the draft's `validate` tags. Client-side
// validation is advisory only; the server stays authoritative.
func advisoryValidate(draft any) string {
	err := validate.Struct(draft)
	if err == nil {
		return ""
	}
	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		// Draft is not a struct; nothing to check.
		return ""
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fieldMessage(fe))
	}
	return strings.Join(parts, ", ")
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return strings.ToLower(fe.Field()) + " is required"
	case "min":
		return strings.ToLower(fe.Field()) + " is too short"
	case "max":
		return strings.ToLower(fe.Field()) + " is too long"
	case "email":
		return strings.ToLower(fe.Field()) + " is not a valid email"
	default:
		return strings.ToLower(fe.Field()) + " is invalid"
	}
}

// errorMessage prefers the flattened field errors of an APIError, then
// its message, then the raw error text.
func errorMessage(err error) string {
	var apiErr *transport.APIError
	if errors.As(err, &apiErr) {
		if flat := apiErr.Flatten(); flat != "" {
			return flat
		}
		return apiErr.Message
	}
	return err.Error()
}
