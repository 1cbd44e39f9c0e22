package graphql

import (
	"context"
	"sync"

	"blogql/internal/pkg/apperr"
)

// Recorder collects the application errors raised while one request resolves,
// so the transport can reshape the engine's formatted errors without relying
// on how the engine wraps them. One recorder per request.
type Recorder struct {
	mu   sync.Mutex
	errs []*apperr.Error
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Record(err *apperr.Error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, err)
}

// Take returns and removes the first recorded error whose message matches.
// Engine-generated errors never match and stay in the engine's own shape.
func (r *Recorder) Take(message string) *apperr.Error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, err := range r.errs {
		if err.Message == message {
			r.errs = append(r.errs[:i], r.errs[i+1:]...)
			return err
		}
	}
	return nil
}

type recorderKey struct{}

func WithRecorder(ctx context.Context, rec *Recorder) context.Context {
	return context.WithValue(ctx, recorderKey{}, rec)
}

func recorderFrom(ctx context.Context) *Recorder {
	rec, _ := ctx.Value(recorderKey{}).(*Recorder)
	return rec
}

// fail normalizes a service error and records it for the transport.
func fail(ctx context.Context, err error) error {
	appErr := apperr.From(err)
	if rec := recorderFrom(ctx); rec != nil {
		rec.Record(appErr)
	}
	return appErr
}
