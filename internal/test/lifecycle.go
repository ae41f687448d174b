package test

import "go.uber.org/fx"

// LifecycleRecorder collects appended fx hooks so tests can invoke
// OnStart/OnStop directly.
type LifecycleRecorder struct {
	Hooks []fx.Hook
}

// Append records the hook.
func (l *LifecycleRecorder) Append(h fx.Hook) {
	l.Hooks = append(l.Hooks, h)
}

// ShutdownerStub signals on Called whenever Shutdown is invoked.
type ShutdownerStub struct {
	Called chan struct{}
}

// Shutdown sends a non-blocking notification.
func (s *ShutdownerStub) Shutdown(...fx.ShutdownOption) error {
	if s.Called != nil {
		select {
		case s.Called <- struct{}{}:
		default:
		}
	}
	return nil
}
