package heartbeat

import (
	"context"
	"encoding/json"
	"time"

	"touchctl-go/bus"
	"touchctl-go/types"
	"touchctl-go/x/logx"
)

var (
	topicConfigHeartbeat = bus.T("config", "heartbeat")
	topicHeartbeat       = bus.T("heartbeat")
	topicHALState        = bus.T("hal", "state")
)

const defaultInterval = 10 * time.Second

var log = logx.New("heartbeat")

// Beat is published on "heartbeat" each interval.
type Beat struct {
	Seq      uint32 `json:"seq"`
	TSms     int64  `json:"ts_ms"`
	HALLevel string `json:"hal_level,omitempty"`
}

type Config struct {
	Interval float64 `json:"interval"` // seconds
}

type Service struct {
	interval time.Duration
}

// parseConfig accepts raw JSON or an already decoded map.
func parseConfig(p any) (Config, bool) {
	var c Config
	switch v := p.(type) {
	case []byte:
		if json.Unmarshal(v, &c) != nil {
			return c, false
		}
	case Config:
		c = v
	case map[string]any:
		f, ok := v["interval"].(float64)
		if !ok {
			return c, false
		}
		c.Interval = f
	default:
		return c, false
	}
	return c, c.Interval > 0
}

func (s *Service) serviceLoop(ctx context.Context, conn *bus.Connection) {
	cfgSub := conn.Subscribe(topicConfigHeartbeat)
	halSub := conn.Subscribe(topicHALState)
	defer conn.Unsubscribe(cfgSub)
	defer conn.Unsubscribe(halSub)

	if s.interval <= 0 {
		s.interval = defaultInterval
	}
	tick := time.NewTicker(s.interval)
	defer tick.Stop()

	var beat Beat
	for {
		select {
		case <-ctx.Done():
			log.Infof("stopping")
			return
		case t := <-tick.C:
			beat.Seq++
			beat.TSms = t.UnixMilli()
			conn.Publish(conn.NewMessage(topicHeartbeat, beat, false))
			log.Debugf("beat %d (hal %s)", beat.Seq, beat.HALLevel)
		case m := <-halSub.Channel():
			if st, ok := m.Payload.(types.HALState); ok {
				beat.HALLevel = st.Level
			}
		case msg := <-cfgSub.Channel():
			c, ok := parseConfig(msg.Payload)
			if !ok {
				log.Warnf("ignoring config %v", msg.Payload)
				continue
			}
			s.interval = time.Duration(c.Interval * float64(time.Second))
			tick.Reset(s.interval)
			log.Infof("interval set to %s", s.interval)
		}
	}
}

// Start the heartbeat service.
func (s *Service) Start(ctx context.Context, conn *bus.Connection) error {
	go s.serviceLoop(ctx, conn)
	return nil
}
