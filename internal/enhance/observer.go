package enhance

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/JaimeStill/go-agents-orchestration/pkg/observability"

	"github.com/talentosprecato/Mari/pkg/decode"
)

type nodeStartData struct {
	Node      string `json:"node"`
	Iteration int    `json:"iteration"`
}

type nodeCompleteData struct {
	Node         string `json:"node"`
	Iteration    int    `json:"iteration"`
	Error        bool   `json:"error"`
	ErrorMessage string `json:"error_message"`
}

type edgeTransitionData struct {
	From            string `json:"from"`
	To              string `json:"to"`
	PredicateResult bool   `json:"predicate_result"`
}

// LogObserver implements observability.Observer by logging the step events of
// one enhancement run, with the duration of every completed step.
type LogObserver struct {
	logger     *slog.Logger
	mu         sync.Mutex
	startTimes map[string]time.Time
}

func NewLogObserver(runID string, logger *slog.Logger) *LogObserver {
	return &LogObserver{
		logger:     logger.With("run_id", runID),
		startTimes: make(map[string]time.Time),
	}
}

func (o *LogObserver) OnEvent(ctx context.Context, event observability.Event) {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch event.Type {
	case observability.EventNodeStart:
		data, err := decode.FromMap[nodeStartData](event.Data)
		if err != nil {
			o.logger.Error("failed to decode node start data", "error", err)
			return
		}
		o.startTimes[data.Node] = event.Timestamp
		o.logger.Debug("step started", "step", data.Node, "iteration", data.Iteration)

	case observability.EventNodeComplete:
		data, err := decode.FromMap[nodeCompleteData](event.Data)
		if err != nil {
			o.logger.Error("failed to decode node complete data", "error", err)
			return
		}

		var duration time.Duration
		if start, ok := o.startTimes[data.Node]; ok {
			duration = event.Timestamp.Sub(start)
			delete(o.startTimes, data.Node)
		}

		if data.Error {
			o.logger.Warn("step failed", "step", data.Node, "error", data.ErrorMessage, "duration", duration)
			return
		}
		o.logger.Info("step completed", "step", data.Node, "duration", duration)

	case observability.EventEdgeTransition:
		data, err := decode.FromMap[edgeTransitionData](event.Data)
		if err != nil {
			o.logger.Error("failed to decode edge transition data", "error", err)
			return
		}
		o.logger.Debug("transition", "from", data.From, "to", data.To)

	default:
		o.logger.Debug("unhandled event", "type", event.Type, "source", event.Source)
	}
}
