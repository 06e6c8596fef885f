package core

import (
	"context"
	"time"

	"touchctl-go/errcode"
	"touchctl-go/types"
)

// ---- Capability & device model ----

// CapAddr is the resolved public address of a capability.
type CapAddr struct {
	Domain string
	Kind   string
	Name   string
}

type CapabilitySpec struct {
	Domain string // empty => defaultDomainFor(kind)
	Kind   types.Kind
	Name   string // empty => device id
	Info   types.Info
}

// EnqueueResult is the synchronous outcome of a control verb.
type EnqueueResult struct {
	OK    bool
	Error errcode.Code
}

// Device is owned by the HAL loop. Init, Tick, Control and Close are only
// ever called from that goroutine, so implementations need no locking for
// state they touch there.
type Device interface {
	ID() string
	Capabilities() []CapabilitySpec
	// Init performs setup; an error aborts the device.
	Init(ctx context.Context) error
	// Tick is one polling pass; never re-entered.
	Tick(ctx context.Context)
	Control(addr CapAddr, verb string, payload any) (EnqueueResult, error)
	// Close detaches interrupts and releases claimed resources.
	Close() error
}

// Periodic devices are ticked at the returned interval.
type Periodic interface {
	TickEvery() time.Duration
}

// Builder input
type BuilderInput struct {
	ID, Type string
	Params   any
	Res      Resources
}

type Builder interface {
	Build(ctx context.Context, in BuilderInput) (Device, error)
}
