// Command touchd runs the touch-panel HAL on a Linux host.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"touchctl-go/bus"
	"touchctl-go/services/config"
	"touchctl-go/services/hal"
	"touchctl-go/services/heartbeat"
	"touchctl-go/types"
	"touchctl-go/x/logx"
)

var log = logx.New("touchd")

func main() {
	device := flag.String("device", "pi-touch", "embedded config to load")
	level := flag.String("log-level", "info", "debug, info, warn or error")
	flag.Parse()

	logx.SetLevel(logx.ParseLevel(*level))
	if _, ok := config.EmbeddedConfigLookup(*device); !ok {
		log.Errorf("no embedded config %q (have %v)", *device, config.Devices())
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = context.WithValue(ctx, config.CtxDeviceKey, *device)

	b := bus.NewBus(16)
	go monitor(ctx, b.NewConnection("monitor"))

	done := make(chan struct{})
	go func() {
		hal.Run(ctx, b.NewConnection("hal"))
		close(done)
	}()
	config.NewConfigService().Start(ctx, b.NewConnection("config"))
	_ = (&heartbeat.Service{}).Start(ctx, b.NewConnection("heartbeat"))

	<-done
	log.Infof("stopped")
}

// monitor logs HAL state, capability status and values.
func monitor(ctx context.Context, conn *bus.Connection) {
	sub := conn.Subscribe(bus.T("hal", "#"))
	defer conn.Unsubscribe(sub)
	for {
		select {
		case <-ctx.Done():
			return
		case m := <-sub.Channel():
			switch p := m.Payload.(type) {
			case types.HALState:
				log.Infof("hal %s %s", p.Level, p.Status)
			case types.CapabilityStatus:
				if p.Link == types.LinkDegraded {
					log.Warnf("%s: %s %s", m.Topic, p.Link, p.Error)
				} else {
					log.Debugf("%s: %s", m.Topic, p.Link)
				}
			case types.NumberValue:
				log.Infof("%s = %g", m.Topic, p.Value)
			case types.LightValue:
				log.Infof("%s = on:%t mode:%s bri:%.2f rgb:(%.2f,%.2f,%.2f) cw:(%.2f,%.2f)",
					m.Topic, p.On, p.Mode, p.Brightness, p.Red, p.Green, p.Blue, p.Cold, p.Warm)
			}
		}
	}
}
