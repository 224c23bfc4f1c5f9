package svg

// Profile selects one of the two markup conventions: coordinate precision
// for generated polygon vertices and whether elements carry a
// shape-rendering hint.
type Profile struct {
	Precision          int  `json:"precision"`
	ShapeRenderingHint bool `json:"shapeRenderingHint"`
}

var (
	// ProfileHinted rounds vertices to whole units and asks renderers to
	// favour speed over anti-aliasing. It is the default.
	ProfileHinted = Profile{Precision: 0, ShapeRenderingHint: true}

	// ProfilePlain keeps three decimals and emits no rendering hint.
	ProfilePlain = Profile{Precision: 3}
)

// Option configures a node during creation.
type Option func(*options)

type options struct {
	profile    Profile
	accumulate bool
}

func defaultOptions() options {
	return options{profile: ProfileHinted}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithProfile sets the markup profile of a shape.
func WithProfile(p Profile) Option {
	return func(o *options) {
		o.profile = p
	}
}

// WithAccumulate makes Root and Mask append every Markup call to an internal
// buffer and return the whole buffer, so a second call repeats the first
// call's output. It exists for consumers that depend on that behaviour and
// is not safe for concurrent Markup calls.
func WithAccumulate() Option {
	return func(o *options) {
		o.accumulate = true
	}
}
