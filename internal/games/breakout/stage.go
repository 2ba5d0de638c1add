package breakout

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// StageParam is the URL query parameter that carries a stage code.
const StageParam = "stage"

// maxStageCodeLen bounds decoding work on untrusted input. A full grid of
// durable cells encodes to well under 2 KiB.
const maxStageCodeLen = 16 << 10

// ErrInvalidStage is wrapped by every DecodeStage failure.
var ErrInvalidStage = errors.New("invalid stage code")

// durablePayload is the JSON payload of a durable cell.
type durablePayload struct {
	HitsRemaining int `json:"hits_remaining"`
}

// cellJSON returns the JSON value for one cell:
// null, "Normal", {"Durable":{"hits_remaining":n}}, "Steel" or "Explosive".
func cellJSON(t BlockType) any {
	switch t.Kind {
	case KindNormal:
		return "Normal"
	case KindDurable:
		return map[string]durablePayload{"Durable": {HitsRemaining: t.Hits}}
	case KindSteel:
		return "Steel"
	case KindExplosive:
		return "Explosive"
	default:
		return nil
	}
}

// EncodeStage serializes a grid to its shareable code: the grid as JSON
// rows, then URL-safe base64 without padding.
func EncodeStage(g Grid) string {
	rows := make([][]any, GridRows)
	for row := range GridRows {
		rows[row] = make([]any, GridCols)
		for col := range GridCols {
			rows[row][col] = cellJSON(g[row][col])
		}
	}
	data, err := json.Marshal(rows)
	if err != nil {
		// Only strings, nulls and int maps are marshaled.
		panic(fmt.Sprintf("stage: marshal grid: %v", err))
	}
	return base64.RawURLEncoding.EncodeToString(data)
}

// DecodeStage parses a stage code. It never panics; any malformed input
// returns an error wrapping ErrInvalidStage and a zero grid.
func DecodeStage(code string) (Grid, error) {
	var g Grid
	code = strings.TrimSpace(code)
	if code == "" {
		return g, fmt.Errorf("%w: empty", ErrInvalidStage)
	}
	if len(code) > maxStageCodeLen {
		return g, fmt.Errorf("%w: %d bytes exceeds limit", ErrInvalidStage, len(code))
	}
	data, err := base64.RawURLEncoding.DecodeString(code)
	if err != nil {
		return g, fmt.Errorf("%w: base64: %w", ErrInvalidStage, err)
	}

	var rows [][]json.RawMessage
	if err := json.Unmarshal(data, &rows); err != nil {
		return g, fmt.Errorf("%w: json: %w", ErrInvalidStage, err)
	}
	if len(rows) != GridRows {
		return g, fmt.Errorf("%w: %d rows, want %d", ErrInvalidStage, len(rows), GridRows)
	}

	var out Grid
	for row, cells := range rows {
		if len(cells) != GridCols {
			return g, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidStage, row, len(cells), GridCols)
		}
		for col, raw := range cells {
			t, err := decodeCell(raw)
			if err != nil {
				return g, fmt.Errorf("%w: row %d col %d: %w", ErrInvalidStage, row, col, err)
			}
			out[row][col] = t
		}
	}
	return out, nil
}

func decodeCell(raw json.RawMessage) (BlockType, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return BlockType{}, nil
	}

	var tag string
	if err := json.Unmarshal(raw, &tag); err == nil {
		switch tag {
		case "Normal":
			return Normal(), nil
		case "Steel":
			return Steel(), nil
		case "Explosive":
			return Explosive(), nil
		}
		return BlockType{}, fmt.Errorf("unknown block %q", tag)
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return BlockType{}, fmt.Errorf("cell is neither tag nor object")
	}
	payload, ok := obj["Durable"]
	if len(obj) != 1 || !ok {
		return BlockType{}, fmt.Errorf("unknown block object")
	}

	// hits_remaining is a u32 count: fractions, exponents and negatives fail.
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(payload, &fields); err != nil {
		return BlockType{}, fmt.Errorf("durable payload: %w", err)
	}
	hitsRaw, ok := fields["hits_remaining"]
	if !ok {
		return BlockType{}, fmt.Errorf("durable payload missing hits_remaining")
	}
	var hits uint32
	if err := json.Unmarshal(hitsRaw, &hits); err != nil {
		return BlockType{}, fmt.Errorf("durable hits_remaining: %w", err)
	}
	if hits < 1 {
		return BlockType{}, fmt.Errorf("durable hits_remaining %d out of range", hits)
	}
	return Durable(int(hits)), nil
}

// StageURL appends the stage code to base as ?stage=<code>.
func StageURL(base string, g Grid) string {
	return base + "?" + StageParam + "=" + EncodeStage(g)
}

// ParseStageParam extracts and decodes a stage code from a full URL, a query
// string such as "?stage=...", or a bare code.
func ParseStageParam(s string) (Grid, error) {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '?'); i >= 0 {
		q, err := url.ParseQuery(s[i+1:])
		if err != nil {
			return Grid{}, fmt.Errorf("%w: query: %w", ErrInvalidStage, err)
		}
		code := q.Get(StageParam)
		if code == "" {
			return Grid{}, fmt.Errorf("%w: no %q parameter", ErrInvalidStage, StageParam)
		}
		return DecodeStage(code)
	}
	return DecodeStage(s)
}
