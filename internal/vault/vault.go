// Package vault implements the credential vault backing biometric quick
// login on mobile clients. The platform pieces (keystore, biometric prompt)
// are injected as interfaces; this package holds the flow and its error
// taxonomy so client shells only render outcomes.
package vault

import (
	"context"
	"errors"
)

var (
	// ErrBiometricsUnavailable means the device cannot prompt at all: no
	// sensor, no enrollment, or the store is missing.
	ErrBiometricsUnavailable = errors.New("biometric authentication unavailable")
	// ErrNoStoredCredentials means the vault is empty; callers offer to
	// enable quick login after the next password login.
	ErrNoStoredCredentials = errors.New("no stored credentials")
	// ErrPromptCancelled means the user dismissed the prompt; callers fall
	// back to the password form silently.
	ErrPromptCancelled = errors.New("biometric prompt cancelled")
	// ErrPromptFailed means the prompt ran and rejected the user.
	ErrPromptFailed = errors.New("biometric authentication failed")
)

// Credentials is the secret material the vault protects.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SecureStore is the platform keystore. Implementations must only release
// data after platform-level user verification.
type SecureStore interface {
	Save(ctx context.Context, creds Credentials) error
	Load(ctx context.Context) (Credentials, bool, error)
	Clear(ctx context.Context) error
}

// BiometricAuthenticator is the platform prompt.
type BiometricAuthenticator interface {
	Available(ctx context.Context) bool
	Prompt(ctx context.Context, reason string) error
}

// Vault combines a store and an authenticator into the quick-login flow.
type Vault struct {
	store SecureStore
	auth  BiometricAuthenticator
}

func New(store SecureStore, auth BiometricAuthenticator) *Vault {
	return &Vault{store: store, auth: auth}
}

// CheckAvailability reports whether quick login can be offered right now:
// the device must support biometrics and credentials must be stored.
func (v *Vault) CheckAvailability(ctx context.Context) error {
	if v.auth == nil || !v.auth.Available(ctx) {
		return ErrBiometricsUnavailable
	}
	_, ok, err := v.store.Load(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNoStoredCredentials
	}
	return nil
}

// SaveCredentials stores the secret material after a successful password
// login, enabling quick login on the next visit.
func (v *Vault) SaveCredentials(ctx context.Context, creds Credentials) error {
	if v.auth == nil || !v.auth.Available(ctx) {
		return ErrBiometricsUnavailable
	}
	return v.store.Save(ctx, creds)
}

// AuthenticateAndGetCredentials prompts the user and, on success, releases
// the stored credentials for replay against the login endpoint.
func (v *Vault) AuthenticateAndGetCredentials(ctx context.Context, reason string) (Credentials, error) {
	if v.auth == nil || !v.auth.Available(ctx) {
		return Credentials{}, ErrBiometricsUnavailable
	}

	creds, ok, err := v.store.Load(ctx)
	if err != nil {
		return Credentials{}, err
	}
	if !ok {
		return Credentials{}, ErrNoStoredCredentials
	}

	if err := v.auth.Prompt(ctx, reason); err != nil {
		return Credentials{}, err
	}

	return creds, nil
}

// ClearCredentials wipes the vault, e.g. after logout or a failed replay.
func (v *Vault) ClearCredentials(ctx context.Context) error {
	return v.store.Clear(ctx)
}
