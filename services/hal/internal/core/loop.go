package core

import (
	"context"

	"touchctl-go/bus"
	"touchctl-go/errcode"
	"touchctl-go/services/hal/internal/util"
	"touchctl-go/types"
	"touchctl-go/x/logx"
	"touchctl-go/x/timex"
)

const (
	eventQueueLen = 64
	pollQueueLen  = 4
)

var log = logx.New("hal")

type capKey struct {
	domain string
	kind   string
	name   string
}

// HAL owns devices, ticks them from a single goroutine and publishes what
// they emit.
type HAL struct {
	conn *bus.Connection
	res  Resources

	dev      map[string]Device // devID -> device
	order    []string          // build order, for teardown
	capIndex map[capKey]string // (domain,kind,name) -> devID

	evCh   chan Event
	pollCh chan PollReq
	poller *Poller
}

func NewHAL(conn *bus.Connection, res Resources) *HAL {
	h := &HAL{
		conn:     conn,
		res:      res,
		dev:      map[string]Device{},
		capIndex: map[capKey]string{},
		evCh:     make(chan Event, eventQueueLen),
		pollCh:   make(chan PollReq, pollQueueLen),
	}
	h.res.Pub = h
	h.poller = NewPoller(h.pollCh)
	return h
}

func (h *HAL) Run(ctx context.Context) {
	cfgSub := h.conn.Subscribe(TopicConfigHAL())
	ctrlSub := h.conn.Subscribe(ctrlWildcard())
	defer h.conn.Unsubscribe(cfgSub)
	defer h.conn.Unsubscribe(ctrlSub)

	pctx, cancelPoll := context.WithCancel(ctx)
	defer cancelPoll()
	go h.poller.Run(pctx)

	h.pubHALState("idle", "awaiting_config")
	ready := false
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			h.pubHALState("stopped", "context_cancelled")
			return
		case msg := <-cfgSub.Channel():
			var cfg types.HALConfig
			if err := util.DecodeJSON(msg.Payload, &cfg); err != nil {
				log.Errorf("config decode failed: %v", err)
				h.pubHALState("error", "config_decode_failed")
				continue
			}
			h.applyConfig(ctx, cfg)
			if !ready {
				ready = true
				h.pubHALState("ready", "")
			}
		case m := <-ctrlSub.Channel():
			if !ready {
				h.replyErr(m, errcode.HALNotReady)
				continue
			}
			h.handleControl(m)
		case req := <-h.pollCh:
			if d := h.dev[req.DevID]; d != nil {
				d.Tick(ctx)
			}
		case ev := <-h.evCh:
			h.handleEvent(ev)
		}
		h.drainEvents()
	}
}

// drainEvents publishes everything emitted during the last step so values
// leave in tick order.
func (h *HAL) drainEvents() {
	for {
		select {
		case ev := <-h.evCh:
			h.handleEvent(ev)
		default:
			return
		}
	}
}

func (h *HAL) applyConfig(ctx context.Context, cfg types.HALConfig) {
	for i := range cfg.Devices {
		dc := cfg.Devices[i]
		if _, exists := h.dev[dc.ID]; exists {
			continue
		}
		b, ok := lookupBuilder(dc.Type)
		if !ok {
			log.Warnf("no builder for type %q (id %q)", dc.Type, dc.ID)
			continue
		}
		dev, err := b.Build(ctx, BuilderInput{ID: dc.ID, Type: dc.Type, Params: dc.Params, Res: h.res})
		if err != nil {
			log.Errorf("build failed for %q: %v", dc.ID, err)
			continue
		}
		caps := h.resolveCaps(dev)
		if err := dev.Init(ctx); err != nil {
			// Setup failure is fatal for the unit: surface it and release claims.
			log.Errorf("setup failed for %q: %v", dc.ID, err)
			for _, a := range caps {
				h.conn.Publish(h.conn.NewMessage(
					CapStatus(a.Domain, a.Kind, a.Name),
					types.CapabilityStatus{Link: types.LinkDegraded, TSms: timex.NowMs(), Error: string(errcode.Of(err))},
					true,
				))
			}
			_ = dev.Close()
			continue
		}
		h.dev[dev.ID()] = dev
		h.order = append(h.order, dev.ID())

		for j, cs := range dev.Capabilities() {
			a := caps[j]
			h.capIndex[capKey{domain: a.Domain, kind: a.Kind, name: a.Name}] = dev.ID()
			h.conn.Publish(h.conn.NewMessage(CapInfo(a.Domain, a.Kind, a.Name), cs.Info, true))
			h.conn.Publish(h.conn.NewMessage(
				CapStatus(a.Domain, a.Kind, a.Name),
				types.CapabilityStatus{Link: types.LinkDown, TSms: timex.NowMs()},
				true,
			))
		}
		if p, ok := dev.(Periodic); ok {
			h.poller.Upsert(dev.ID(), p.TickEvery(), 0)
		}
		log.Infof("device %q (%s) ready", dev.ID(), dc.Type)
	}
}

// resolveCaps fills in default domain and name for each capability.
func (h *HAL) resolveCaps(dev Device) []CapAddr {
	specs := dev.Capabilities()
	out := make([]CapAddr, 0, len(specs))
	for _, cs := range specs {
		k := string(cs.Kind)
		d := cs.Domain
		if d == "" {
			d = defaultDomainFor(k)
		}
		n := cs.Name
		if n == "" {
			n = dev.ID()
		}
		out = append(out, CapAddr{Domain: d, Kind: k, Name: n})
	}
	return out
}

func (h *HAL) closeAll() {
	for i := len(h.order) - 1; i >= 0; i-- {
		id := h.order[i]
		h.poller.Stop(id)
		if err := h.dev[id].Close(); err != nil {
			log.Warnf("close %q: %v", id, err)
		}
		delete(h.dev, id)
	}
	h.order = nil
}

func (h *HAL) handleControl(msg *bus.Message) {
	// hal/cap/<domain>/<kind>/<name>/control/<verb>
	if msg.Topic.Len() < 7 {
		h.replyErr(msg, errcode.InvalidTopic)
		return
	}
	domain, _ := msg.Topic.At(2).(string)
	kind, _ := msg.Topic.At(3).(string)
	name, _ := msg.Topic.At(4).(string)
	verb, _ := msg.Topic.At(6).(string)

	ownerID, ok := h.capIndex[capKey{domain: domain, kind: kind, name: name}]
	if !ok {
		h.replyErr(msg, errcode.UnknownCapability)
		return
	}
	dev := h.dev[ownerID]
	if dev == nil {
		h.replyErr(msg, errcode.UnknownDevice)
		return
	}

	res, err := dev.Control(CapAddr{Domain: domain, Kind: kind, Name: name}, verb, msg.Payload)
	if err != nil {
		h.replyFromError(msg, err)
		return
	}
	if res.OK {
		h.replyOK(msg)
		return
	}
	code := res.Error
	if code == "" {
		code = errcode.Busy
	}
	h.replyErr(msg, code)
}

func (h *HAL) handleEvent(ev Event) {
	d, k, n := ev.Addr.Domain, ev.Addr.Kind, ev.Addr.Name
	ts := ev.TSms
	if ts == 0 {
		ts = timex.NowMs()
	}

	if ev.Err != "" {
		h.conn.Publish(h.conn.NewMessage(
			CapStatus(d, k, n),
			types.CapabilityStatus{Link: types.LinkDegraded, TSms: ts, Error: ev.Err},
			true,
		))
		return
	}

	if ev.IsEvent {
		t := capEvent(d, k, n)
		if ev.EventTag != "" {
			t = t.Append(ev.EventTag)
		}
		h.conn.Publish(h.conn.NewMessage(t, ev.Payload, false))
	} else {
		h.conn.Publish(h.conn.NewMessage(CapValue(d, k, n), ev.Payload, true))
	}
	h.conn.Publish(h.conn.NewMessage(
		CapStatus(d, k, n),
		types.CapabilityStatus{Link: types.LinkUp, TSms: ts},
		true,
	))
}

func (h *HAL) pubHALState(level, status string) {
	h.conn.Publish(h.conn.NewMessage(
		TopicHALState(),
		types.HALState{Level: level, Status: status, TSms: timex.NowMs()},
		true,
	))
}

func defaultDomainFor(kind string) string {
	switch kind {
	case string(types.KindTouchX), string(types.KindTouchY), string(types.KindPressure):
		return types.DomainTouch
	case string(types.KindLight):
		return types.DomainLight
	default:
		return "io"
	}
}

// ---- HAL as EventEmitter (enqueue to single publisher) ----

func (h *HAL) Emit(ev Event) bool {
	select {
	case h.evCh <- ev:
		return true
	default:
		return false
	}
}
