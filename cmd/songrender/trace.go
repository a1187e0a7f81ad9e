package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/kaelstrom/wavegraph/pkg/renderer"
)

// chromeEvent is one chrome://tracing JSON object.
type chromeEvent struct {
	Name string  `json:"name"`
	Cat  string  `json:"cat"`
	Ph   string  `json:"ph"`
	Ts   int64   `json:"ts"`
	Pid  int     `json:"pid"`
	Tid  int64   `json:"tid"`
	Args argsObj `json:"args,omitempty"`
}

type argsObj struct {
	RenderSamplesCallIndex *int32 `json:"renderSamplesCallIndex,omitempty"`
	TrackIndex             *int32 `json:"trackIndex,omitempty"`
}

// writeTrace writes events as a chrome://tracing-compatible JSON array.
func writeTrace(path string, events []renderer.TraceEvent) error {
	out := make([]chromeEvent, 0, len(events))
	for _, ev := range events {
		name := ev.Name
		var args argsObj
		switch ev.Kind {
		case renderer.RenderSamplesEvent:
			name = fmt.Sprintf("%s#%d", ev.Name, ev.RenderSamplesCallIndex)
			idx := ev.RenderSamplesCallIndex
			args.RenderSamplesCallIndex = &idx
		case renderer.RenderTrackEvent:
			name = fmt.Sprintf("%s[track %d]", ev.Name, ev.TrackIndex)
			idx := ev.TrackIndex
			args.TrackIndex = &idx
		}
		out = append(out, chromeEvent{
			Name: name,
			Cat:  ev.Category,
			Ph:   string(ev.Phase),
			Ts:   ev.TsUs,
			Pid:  ev.Pid,
			Tid:  ev.Tid,
			Args: args,
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal trace: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write trace: %w", err)
	}
	return nil
}
