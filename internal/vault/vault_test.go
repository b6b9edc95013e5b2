package vault

import (
	"context"
	"errors"
	"sync"
	"testing"
)

type stubAuthenticator struct {
	available bool
	err       error
	prompts   int
}

func (a *stubAuthenticator) Available(context.Context) bool { return a.available }
func (a *stubAuthenticator) Prompt(context.Context, string) error {
	a.prompts++
	return a.err
}

func TestCheckAvailability(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	v := New(store, &stubAuthenticator{available: false})
	if err := v.CheckAvailability(ctx); !errors.Is(err, ErrBiometricsUnavailable) {
		t.Errorf("no sensor err = %v, want ErrBiometricsUnavailable", err)
	}

	v = New(store, &stubAuthenticator{available: true})
	if err := v.CheckAvailability(ctx); !errors.Is(err, ErrNoStoredCredentials) {
		t.Errorf("empty vault err = %v, want ErrNoStoredCredentials", err)
	}

	if err := v.SaveCredentials(ctx, Credentials{Email: "a@example.com", Password: "pw"}); err != nil {
		t.Fatalf("SaveCredentials: %v", err)
	}
	if err := v.CheckAvailability(ctx); err != nil {
		t.Errorf("CheckAvailability: %v", err)
	}
}

func TestAuthenticateAndGetCredentials(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	auth := &stubAuthenticator{available: true}
	v := New(store, auth)

	if _, err := v.AuthenticateAndGetCredentials(ctx, "log in"); !errors.Is(err, ErrNoStoredCredentials) {
		t.Errorf("empty vault err = %v", err)
	}
	if auth.prompts != 0 {
		t.Error("prompted before checking the vault")
	}

	if err := v.SaveCredentials(ctx, Credentials{Email: "a@example.com", Password: "pw"}); err != nil {
		t.Fatalf("SaveCredentials: %v", err)
	}

	creds, err := v.AuthenticateAndGetCredentials(ctx, "log in")
	if err != nil {
		t.Fatalf("AuthenticateAndGetCredentials: %v", err)
	}
	if creds.Email != "a@example.com" || creds.Password != "pw" {
		t.Errorf("unexpected credentials %+v", creds)
	}

	auth.err = ErrPromptCancelled
	if _, err := v.AuthenticateAndGetCredentials(ctx, "log in"); !errors.Is(err, ErrPromptCancelled) {
		t.Errorf("cancelled prompt err = %v", err)
	}
}

func TestClearCredentials(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	v := New(store, &stubAuthenticator{available: true})

	if err := v.SaveCredentials(ctx, Credentials{Email: "a@example.com"}); err != nil {
		t.Fatalf("SaveCredentials: %v", err)
	}
	if err := v.ClearCredentials(ctx); err != nil {
		t.Fatalf("ClearCredentials: %v", err)
	}
	if err := v.CheckAvailability(ctx); !errors.Is(err, ErrNoStoredCredentials) {
		t.Errorf("post-clear err = %v, want ErrNoStoredCredentials", err)
	}
}

func TestLoginGateSingleFlight(t *testing.T) {
	gate := NewLoginGate()

	if !gate.TryAcquire() {
		t.Fatal("first acquire failed")
	}
	if gate.TryAcquire() {
		t.Error("second acquire succeeded while in flight")
	}
	gate.Release()
	if !gate.TryAcquire() {
		t.Error("acquire after release failed")
	}
	gate.Release()
}

func TestLoginGateConcurrent(t *testing.T) {
	gate := NewLoginGate()

	var wg sync.WaitGroup
	var acquired int32
	results := make(chan bool, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- gate.TryAcquire()
		}()
	}
	wg.Wait()
	close(results)

	for ok := range results {
		if ok {
			acquired++
		}
	}
	if acquired != 1 {
		t.Errorf("%d goroutines acquired the gate, want exactly 1", acquired)
	}
}
