package driver

import (
	"encoding/json"
	"fmt"

	"cedar/internal/diag"
	"cedar/internal/observ"
	"cedar/internal/source"
)

type timingPayload struct {
	Kind    string               `json:"kind"`
	Path    string               `json:"path,omitempty"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
}

func appendTimingDiagnostic(bag *diag.Bag, payload timingPayload) {
	if bag == nil {
		return
	}
	if payload.Kind == "" {
		payload.Kind = "file"
	}
	msg := fmt.Sprintf("timings (%s): total %.2f ms", payload.Kind, payload.TotalMS)
	if payload.Path != "" {
		msg = fmt.Sprintf("%s — %s", msg, payload.Path)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return
	}

	// Тайминги не привязаны к месту в исходнике.
	entry := diag.Diagnostic{
		Severity: diag.SevInfo,
		Code:     diag.ObsTimings,
		Message:  msg,
		Primary:  source.Span{File: source.NoFile},
		Notes: []diag.Note{
			{Span: source.Span{File: source.NoFile}, Msg: string(data)},
		},
	}

	if bag.Add(entry) {
		return
	}
	// Переполненный bag расширяем через Merge, чтобы тайминги не потерялись.
	overflow := diag.NewBag(bag.Len() + 1)
	overflow.Add(entry)
	bag.Merge(overflow)
}
