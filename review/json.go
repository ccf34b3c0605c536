package review

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// DecodeRequest parses one review request from its wire form. Three
// shapes are accepted, selected by the "type" tag:
//
//	{"type":"line","line":3}
//	{"type":"range","range":{"fromLine":1,"toLine":3}}
//	{"type":"span","span":{"from":10,"to":25}}
//
// each optionally carrying "id", "improved", "originalClass" and
// "improvedClass". A request whose tagged payload is missing or not an
// object decodes to an error.
func DecodeRequest(data []byte) (Request, error) {
	if !gjson.ValidBytes(data) {
		return Request{}, fmt.Errorf("invalid request JSON")
	}
	return decodeRequest(gjson.ParseBytes(data))
}

// DecodeRequests parses a JSON array of review requests. Elements that
// fail to decode are dropped so the rest of the batch survives, which
// mirrors the per-request no-op the controller applies.
func DecodeRequests(data []byte) ([]Request, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid request JSON")
	}
	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return nil, fmt.Errorf("expected a JSON array of requests")
	}
	var reqs []Request
	root.ForEach(func(_, elem gjson.Result) bool {
		if req, err := decodeRequest(elem); err == nil {
			reqs = append(reqs, req)
		}
		return true
	})
	return reqs, nil
}

func decodeRequest(root gjson.Result) (Request, error) {
	if !root.IsObject() {
		return Request{}, fmt.Errorf("request is not an object")
	}
	var target Target
	switch typ := root.Get("type").String(); typ {
	case "line":
		line := root.Get("line")
		if !line.Exists() {
			return Request{}, fmt.Errorf("line request missing line")
		}
		target = Line(int(line.Int()))
	case "range":
		r := root.Get("range")
		if !r.IsObject() {
			return Request{}, fmt.Errorf("range request missing range")
		}
		from, to := r.Get("fromLine"), r.Get("toLine")
		if !from.Exists() || !to.Exists() {
			return Request{}, fmt.Errorf("range request missing fromLine or toLine")
		}
		target = Lines(int(from.Int()), int(to.Int()))
	case "span":
		s := root.Get("span")
		if !s.IsObject() {
			return Request{}, fmt.Errorf("span request missing span")
		}
		from, to := s.Get("from"), s.Get("to")
		if !from.Exists() || !to.Exists() {
			return Request{}, fmt.Errorf("span request missing from or to")
		}
		target = Offsets(int(from.Int()), int(to.Int()))
	default:
		return Request{}, fmt.Errorf("unknown request type %q", typ)
	}
	return Request{
		Target:        target,
		Improved:      root.Get("improved").String(),
		ID:            root.Get("id").String(),
		OriginalClass: root.Get("originalClass").String(),
		ImprovedClass: root.Get("improvedClass").String(),
	}, nil
}

// EncodeRecord renders a record as JSON for hosts consuming metadata
// over a bridge.
func EncodeRecord(rec Record) ([]byte, error) {
	out := []byte(`{}`)
	var err error
	set := func(path string, value any) {
		if err != nil {
			return
		}
		out, err = sjson.SetBytes(out, path, value)
	}
	set("id", rec.ID)
	set("original.from", rec.OriginalFrom)
	set("original.to", rec.OriginalTo)
	set("original.text", rec.OriginalText)
	set("inserted.from", rec.InsertedFrom)
	set("inserted.to", rec.InsertedTo)
	if rec.OriginalClass != "" {
		set("originalClass", rec.OriginalClass)
	}
	if rec.ImprovedClass != "" {
		set("improvedClass", rec.ImprovedClass)
	}
	if err != nil {
		return nil, fmt.Errorf("encode record %q: %w", rec.ID, err)
	}
	return out, nil
}

// EncodeRecords renders a slice of records as a JSON array.
func EncodeRecords(recs []Record) ([]byte, error) {
	out := []byte(`[]`)
	for i, rec := range recs {
		encoded, err := EncodeRecord(rec)
		if err != nil {
			return nil, err
		}
		out2, err := sjson.SetRawBytes(out, fmt.Sprintf("%d", i), encoded)
		if err != nil {
			return nil, fmt.Errorf("encode records: %w", err)
		}
		out = out2
	}
	return out, nil
}
