package tools

import (
	"sync"
	"time"
)

// Call outcomes reported to observers.
const (
	OutcomeOK            = "ok"
	OutcomeToolError     = "tool_error"
	OutcomeProtocolError = "protocol_error"
)

// CallObservation captures one dispatched tool call.
type CallObservation struct {
	Tool      string
	Outcome   string
	ErrorCode int
	Duration  time.Duration
}

// Observer receives dispatch-level observability events.
type Observer interface {
	ObserveCall(observation CallObservation)
}

type noopObserver struct{}

func (noopObserver) ObserveCall(CallObservation) {}

var (
	observerMu     sync.RWMutex
	activeObserver Observer = noopObserver{}
)

// SetObserver sets the process-wide dispatch observer. Passing nil restores
// the no-op observer.
func SetObserver(observer Observer) {
	observerMu.Lock()
	defer observerMu.Unlock()
	if observer == nil {
		activeObserver = noopObserver{}
		return
	}
	activeObserver = observer
}

func observeCall(observation CallObservation) {
	observerMu.RLock()
	observer := activeObserver
	observerMu.RUnlock()
	observer.ObserveCall(observation)
}
