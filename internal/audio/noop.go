package audio

// NoopName is the registry name of the silent backend.
const NoopName = "noop"

// NoopBackend accepts every clip and plays nothing. Used when muted or when
// no output device is available.
type NoopBackend struct{}

// NewNoopBackend creates a new no-op backend
func NewNoopBackend() Backend {
	return &NoopBackend{}
}

// Name returns the backend identifier
func (n *NoopBackend) Name() string {
	return NoopName
}

// IsEnabled always returns false for the noop backend
func (n *NoopBackend) IsEnabled() bool {
	return false
}

// Play returns a stream that never advances
func (n *NoopBackend) Play(clip Clip, opts PlayOptions) (Stream, error) {
	return noopStream(opts.Offset), nil
}

type noopStream int

func (s noopStream) Stop() int { return int(s) }

func init() {
	Register(NoopName, func() Backend { return NewNoopBackend() })
}
