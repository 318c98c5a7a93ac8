// Package parser provides response-parsing utilities for the gemini-note CLI.
//
// ResponseText turns a loosely structured generateContent response into the
// best available human-readable text. Upstream shapes differ between API
// versions and SDKs, so the response is probed field by field instead of being
// decoded into a fixed schema.
package parser

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/CodexForgeBR/gemini-note/internal/logging"
)

// partSeparator joins text fragments collected from parts or output entries.
const partSeparator = "\n\n"

// textProbe inspects a structured response and returns a candidate text.
// An empty string means the probe found nothing usable.
type textProbe func(m map[string]any) string

// textProbes are evaluated in order; the first non-empty result wins.
var textProbes = []textProbe{
	func(m map[string]any) string { return stringField(m, "text") },
	func(m map[string]any) string { return stringField(m, "outputText") },
	candidatePartsText,
	outputText,
}

// ResponseText extracts text from resp.
//
// Strategy:
//  1. A non-empty top-level "text" string.
//  2. A non-empty top-level "outputText" string.
//  3. The "text" of every part of the first candidate's content, skipping
//     empty parts, joined by a blank line.
//  4. The "text" of every entry of a top-level "output" list, same join.
//  5. The JSON serialization of the whole response.
//
// A nil response yields ("", false). ResponseText never panics and never
// returns an error: any failure along the way is logged and reported as
// ("", false). The input is never modified.
func ResponseText(resp any) (text string, ok bool) {
	if isNil(resp) {
		return "", false
	}

	defer func() {
		if r := recover(); r != nil {
			logging.Error(fmt.Sprintf("extract response text: %v", r))
			text, ok = "", false
		}
	}()

	view, err := structuredView(resp)
	if err != nil {
		logging.Error(fmt.Sprintf("extract response text: %v", err))
		return "", false
	}

	if m, isMap := view.(map[string]any); isMap {
		for _, probe := range textProbes {
			if s := probe(m); s != "" {
				return s, true
			}
		}
	}

	data, err := json.Marshal(resp)
	if err != nil {
		logging.Error(fmt.Sprintf("serialize response: %v", err))
		return "", false
	}
	if len(data) == 0 {
		return "", false
	}
	return string(data), true
}

// structuredView returns resp as generic JSON values. Maps are used as-is;
// anything else (SDK structs, pointers) is round-tripped through JSON.
func structuredView(resp any) (any, error) {
	if m, ok := resp.(map[string]any); ok {
		return m, nil
	}
	data, err := json.Marshal(resp)
	if err != nil {
		return nil, fmt.Errorf("marshal response: %w", err)
	}
	var view any
	if err := json.Unmarshal(data, &view); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return view, nil
}

// candidatePartsText joins the texts of candidates[0].content.parts.
func candidatePartsText(m map[string]any) string {
	candidates := asSlice(m["candidates"])
	if len(candidates) == 0 {
		return ""
	}
	candidate := asMap(candidates[0])
	if candidate == nil {
		return ""
	}
	content := asMap(candidate["content"])
	if content == nil {
		return ""
	}
	return joinTexts(asSlice(content["parts"]))
}

// outputText joins the texts of a top-level output list.
func outputText(m map[string]any) string {
	return joinTexts(asSlice(m["output"]))
}

func joinTexts(items []any) string {
	var texts []string
	for _, item := range items {
		if s := stringField(asMap(item), "text"); s != "" {
			texts = append(texts, s)
		}
	}
	return strings.Join(texts, partSeparator)
}

func stringField(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func asSlice(v any) []any {
	switch s := v.(type) {
	case []any:
		return s
	case []map[string]any:
		out := make([]any, len(s))
		for i, item := range s {
			out[i] = item
		}
		return out
	default:
		return nil
	}
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
