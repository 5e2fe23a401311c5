package registry

import "encoding/json"

// ListResult is the single shape every list consumer sees, whatever the
// backend endpoint actually returned.
type ListResult struct {
	Items []json.RawMessage
	Total int
}

// NormalizeList unwraps the response shapes observed across registry
// endpoints with a strict, ordered fallback chain:
//
//  1. bare array
//  2. {data: [...], total|totalRecords}
//  3. {data: {data: [...], total|totalRecords}}
//  4. {data: {rows: [...], total|totalRecords}}
//  5. {rows: [...], total|totalRecords}
//
// Call sites never unwrap responses themselves.
func NormalizeList(raw json.RawMessage) ListResult {
	var bare []json.RawMessage
	if err := json.Unmarshal(raw, &bare); err == nil {
		return ListResult{Items: items(bare), Total: len(bare)}
	}

	var outer struct {
		Data         json.RawMessage   `json:"data"`
		Rows         []json.RawMessage `json:"rows"`
		Total        *int              `json:"total"`
		TotalRecords *int              `json:"totalRecords"`
	}
	if err := json.Unmarshal(raw, &outer); err != nil {
		return ListResult{Items: []json.RawMessage{}}
	}

	total := pick(outer.Total, outer.TotalRecords)

	if len(outer.Data) > 0 {
		var arr []json.RawMessage
		if err := json.Unmarshal(outer.Data, &arr); err == nil {
			return ListResult{Items: items(arr), Total: orLen(total, len(arr))}
		}

		var inner struct {
			Data         []json.RawMessage `json:"data"`
			Rows         []json.RawMessage `json:"rows"`
			Total        *int              `json:"total"`
			TotalRecords *int              `json:"totalRecords"`
		}
		if err := json.Unmarshal(outer.Data, &inner); err == nil {
			innerTotal := pick(inner.Total, inner.TotalRecords, outer.Total, outer.TotalRecords)
			if inner.Data != nil {
				return ListResult{Items: items(inner.Data), Total: orLen(innerTotal, len(inner.Data))}
			}
			if inner.Rows != nil {
				return ListResult{Items: items(inner.Rows), Total: orLen(innerTotal, len(inner.Rows))}
			}
		}
	}

	if outer.Rows != nil {
		return ListResult{Items: items(outer.Rows), Total: orLen(total, len(outer.Rows))}
	}

	return ListResult{Items: []json.RawMessage{}}
}

func items(arr []json.RawMessage) []json.RawMessage {
	if arr == nil {
		return []json.RawMessage{}
	}
	return arr
}

func pick(candidates ...*int) *int {
	for _, c := range candidates {
		if c != nil {
			return c
		}
	}
	return nil
}

func orLen(total *int, n int) int {
	if total != nil {
		return *total
	}
	return n
}

// RecordID pulls the record id out of a mutation response, whatever
// envelope it arrived in.
func RecordID(raw json.RawMessage) string {
	var wrapper struct {
		ID   json.Number `json:"id"`
		Data struct {
			ID json.Number `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return ""
	}
	if wrapper.ID.String() != "" {
		return wrapper.ID.String()
	}
	return wrapper.Data.ID.String()
}
