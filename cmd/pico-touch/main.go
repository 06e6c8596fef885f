//go:build rp2040 || rp2350

package main

import (
	"context"
	"runtime"
	"time"

	"touchctl-go/bus"
	"touchctl-go/services/config"
	"touchctl-go/services/hal"
	"touchctl-go/services/heartbeat"
	"touchctl-go/types"
	"touchctl-go/x/logx"
)

var log = logx.New("main")

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(3 * time.Second)
	ctx := context.WithValue(context.Background(), config.CtxDeviceKey, "pico-touch")

	log.Infof("bootstrapping bus")
	b := bus.NewBus(4)
	uiConn := b.NewConnection("ui")

	mon := uiConn.Subscribe(bus.T("hal", "cap", "+", "+", "+", "value"))
	go func() {
		for m := range mon.Channel() {
			if v, ok := m.Payload.(types.NumberValue); ok {
				log.Infof("%s = %d", m.Topic, int(v.Value))
			}
		}
	}()

	go hal.Run(ctx, b.NewConnection("hal"))
	config.NewConfigService().Start(ctx, b.NewConnection("config"))
	_ = (&heartbeat.Service{}).Start(ctx, b.NewConnection("heartbeat"))

	for {
		printMem()
		time.Sleep(10 * time.Second)
	}
}

// printMem prints a compact snapshot of TinyGo runtime memory stats.
func printMem() {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	println(
		"[mem]",
		"alloc:", uint32(ms.Alloc),
		"heapInuse:", uint32(ms.HeapInuse),
		"mallocs:", uint32(ms.Mallocs),
		"frees:", uint32(ms.Frees),
	)
}
