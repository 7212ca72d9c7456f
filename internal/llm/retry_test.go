// ABOUTME: Tests for the completion retry wrapper and transient error classification
// ABOUTME: Uses a scripted fake Completer to count attempts
package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"google.golang.org/genai"
)

type scriptedCompleter struct {
	errs  []error
	reply string
	calls int
	block bool
}

func (s *scriptedCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	s.calls++
	if s.block && s.calls == 1 {
		<-ctx.Done()
		return "", ctx.Err()
	}
	if s.calls <= len(s.errs) {
		return "", s.errs[s.calls-1]
	}
	return s.reply, nil
}

func transientErr() error {
	return fmt.Errorf("%w: %w", ErrCompletion, genai.APIError{Code: 503})
}

func TestRetryingCompleter_RetriesTransientOnce(t *testing.T) {
	fake := &scriptedCompleter{errs: []error{transientErr()}, reply: "ok"}
	r := NewRetryingCompleter(fake, RetryConfig{MaxRetries: 1, RetryDelay: time.Millisecond})

	reply, err := r.Complete(context.Background(), "p")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if reply != "ok" || fake.calls != 2 {
		t.Errorf("reply = %q after %d calls", reply, fake.calls)
	}
}

func TestRetryingCompleter_GivesUpAfterMaxRetries(t *testing.T) {
	fake := &scriptedCompleter{errs: []error{transientErr(), transientErr(), transientErr()}}
	r := NewRetryingCompleter(fake, RetryConfig{MaxRetries: 1, RetryDelay: time.Millisecond})

	_, err := r.Complete(context.Background(), "p")
	if !errors.Is(err, ErrCompletion) {
		t.Fatalf("err = %v, want ErrCompletion", err)
	}
	if fake.calls != 2 {
		t.Errorf("calls = %d, want 2", fake.calls)
	}
}

func TestRetryingCompleter_NoRetryOnPermanentError(t *testing.T) {
	fake := &scriptedCompleter{errs: []error{genai.APIError{Code: 400}}}
	r := NewRetryingCompleter(fake, RetryConfig{MaxRetries: 3, RetryDelay: time.Millisecond})

	_, err := r.Complete(context.Background(), "p")
	if !errors.Is(err, ErrCompletion) {
		t.Errorf("err = %v, want ErrCompletion even when the provider error was bare", err)
	}
	if fake.calls != 1 {
		t.Errorf("calls = %d, want 1", fake.calls)
	}
}

func TestRetryingCompleter_NoRetryAfterCallerCancels(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	fake := &scriptedCompleter{errs: []error{transientErr()}, reply: "late"}
	r := NewRetryingCompleter(fake, RetryConfig{MaxRetries: 2, RetryDelay: time.Millisecond})

	cancel()
	if _, err := r.Complete(ctx, "p"); err == nil {
		t.Fatal("expected error")
	}
	if fake.calls != 1 {
		t.Errorf("calls = %d, want 1", fake.calls)
	}
}

func TestRetryingCompleter_AttemptTimeoutIsRetried(t *testing.T) {
	fake := &scriptedCompleter{block: true, reply: "second try"}
	r := NewRetryingCompleter(fake, RetryConfig{
		AttemptTimeout: 20 * time.Millisecond,
		MaxRetries:     1,
		RetryDelay:     time.Millisecond,
	})

	reply, err := r.Complete(context.Background(), "p")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if reply != "second try" {
		t.Errorf("reply = %q", reply)
	}
}

type timeoutNetErr struct{}

func (timeoutNetErr) Error() string   { return "i/o timeout" }
func (timeoutNetErr) Timeout() bool   { return true }
func (timeoutNetErr) Temporary() bool { return true }

var _ net.Error = timeoutNetErr{}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"canceled", context.Canceled, false},
		{"deadline", fmt.Errorf("wrapped: %w", context.DeadlineExceeded), true},
		{"genai 500", genai.APIError{Code: 500}, true},
		{"genai 429", genai.APIError{Code: 429}, true},
		{"genai 404", genai.APIError{Code: 404}, false},
		{"openai api 503", &openai.APIError{HTTPStatusCode: 503}, true},
		{"openai api 401", &openai.APIError{HTTPStatusCode: 401}, false},
		{"openai request 502", &openai.RequestError{HTTPStatusCode: 502}, true},
		{"rest status 500", &StatusError{Code: 500}, true},
		{"net error", timeoutNetErr{}, true},
		{"plain", errors.New("nope"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTransient(tt.err); got != tt.want {
				t.Errorf("IsTransient(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
