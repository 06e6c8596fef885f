package touch

// Consumer receives each accepted sample.
type Consumer interface {
	Consume(s Sample)
}

// NumberSink publishes one numeric telemetry value.
type NumberSink interface {
	Publish(v float64)
}

// Router republishes samples as three values. The panel is mounted rotated,
// so the axes are swapped.
type Router struct {
	X, Y, Pressure NumberSink
}

// Consume publishes every sample; equal values are republished.
func (r *Router) Consume(s Sample) {
	r.X.Publish(float64(s.Y))
	r.Y.Publish(float64(s.X))
	r.Pressure.Publish(float64(s.Z1))
}
