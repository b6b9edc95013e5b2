package vault

import "sync/atomic"

// LoginGate is a single-flight latch around the quick-login flow. Biometric
// prompts must never stack: a second trigger while one is in flight is
// dropped, and the latch only reopens when the first attempt settles.
type LoginGate struct {
	busy atomic.Bool
}

func NewLoginGate() *LoginGate {
	return &LoginGate{}
}

// TryAcquire claims the gate. It returns false if an attempt is already in
// flight.
func (g *LoginGate) TryAcquire() bool {
	return g.busy.CompareAndSwap(false, true)
}

// Release reopens the gate after the attempt settles, success or failure.
func (g *LoginGate) Release() {
	g.busy.Store(false)
}

// InFlight reports whether an attempt currently holds the gate.
func (g *LoginGate) InFlight() bool {
	return g.busy.Load()
}
