package httpd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/CarlosHenriqueSL/WebDisplay/internal/history"
	"github.com/CarlosHenriqueSL/WebDisplay/internal/station"
)

const (
	contentTypeHTML = "text/html"
	contentTypeJSON = "application/json"
)

// Response is a fully assembled reply body. The server derives the
// Content-Length header from it before any bytes go out.
type Response struct {
	ContentType string // empty means no Content-Type header
	Body        []byte
}

// HistorySource serves the recent-readings query behind GET /historico.
type HistorySource interface {
	Recent(limit int) ([]history.Entry, error)
}

// Router dispatches one raw request to a handler. Matching is done against
// the literal request-line token including the trailing space, so
// "GET /temp" never collides with "GET /temperatura ".
type Router struct {
	Nav        *station.Navigator
	Thresholds *station.ThresholdStore
	Snapshot   *station.Snapshot

	History      HistorySource // optional
	HistoryLimit int
}

// Route inspects the raw request bytes (a single transport read, possibly
// truncated) and produces the response. Unknown requests are not an error:
// they get the home dashboard.
func (rt *Router) Route(raw []byte) Response {
	switch {
	case hasToken(raw, "GET /navigate "):
		return rt.navigate()
	case hasToken(raw, "POST /config "):
		return rt.applyConfig(requestBody(raw))
	case hasToken(raw, "GET /getconfig "):
		return rt.getConfig()
	case hasToken(raw, "GET /estado "):
		return rt.estado()
	case hasToken(raw, "GET /historico "):
		return rt.historico()
	case hasToken(raw, "GET /config "):
		return fullPage(pageConfig)
	case hasToken(raw, "GET /temperatura "), hasToken(raw, "GET /umidade "),
		hasToken(raw, "GET /pressao "), hasToken(raw, "GET /altitude "):
		return fullPage(pageChart)
	default:
		return fullPage(pageHome)
	}
}

func (rt *Router) navigate() Response {
	target, ok := rt.Nav.PollAndClear()
	if !ok {
		return Response{ContentType: contentTypeJSON, Body: []byte(`{"goto":null}`)}
	}
	return Response{
		ContentType: contentTypeJSON,
		Body:        []byte(fmt.Sprintf("{\"goto\":\"%s\"}", target)),
	}
}

func (rt *Router) applyConfig(body string) Response {
	for _, pair := range strings.Split(body, "&") {
		key, valueStr, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		// Unparsable values become 0 rather than failing the request.
		value, err := strconv.ParseFloat(valueStr, 64)
		if err != nil {
			value = 0
		}
		rt.Thresholds.Apply(key, value)
	}
	return Response{}
}

func (rt *Router) getConfig() Response {
	t := rt.Thresholds.Snapshot()
	payload := fmt.Sprintf(
		"{\"temp_offset\":%.2f,\"temp_min\":%.2f,\"temp_max\":%.2f,"+
			"\"umid_offset\":%.2f,\"umid_min\":%.2f,\"umid_max\":%.2f,"+
			"\"press_offset\":%.2f,\"press_min\":%.2f,\"press_max\":%.2f,"+
			"\"alt_offset\":%.2f,\"alt_min\":%.2f,\"alt_max\":%.2f}",
		t.Temperature.Offset, t.Temperature.Min, t.Temperature.Max,
		t.Humidity.Offset, t.Humidity.Min, t.Humidity.Max,
		t.Pressure.Offset, t.Pressure.Min, t.Pressure.Max,
		t.Altitude.Offset, t.Altitude.Min, t.Altitude.Max,
	)
	return Response{ContentType: contentTypeJSON, Body: []byte(payload)}
}

func (rt *Router) estado() Response {
	r := rt.Snapshot.Get()
	payload := fmt.Sprintf(
		"{\"temperatura\":%.2f,\"umidade\":%.2f,\"pressao\":%.3f,\"altitude\":%.2f}",
		r.Temperatura, r.Umidade, r.Pressao, r.Altitude,
	)
	return Response{ContentType: contentTypeJSON, Body: []byte(payload)}
}

func (rt *Router) historico() Response {
	if rt.History == nil {
		return Response{ContentType: contentTypeJSON, Body: []byte("[]")}
	}
	entries, err := rt.History.Recent(rt.HistoryLimit)
	if err != nil {
		slog.Error("history query failed", "error", err)
		return Response{ContentType: contentTypeJSON, Body: []byte("[]")}
	}
	if len(entries) == 0 {
		return Response{ContentType: contentTypeJSON, Body: []byte("[]")}
	}
	payload, err := json.Marshal(entries)
	if err != nil {
		slog.Error("history marshal failed", "error", err)
		return Response{ContentType: contentTypeJSON, Body: []byte("[]")}
	}
	return Response{ContentType: contentTypeJSON, Body: payload}
}

func fullPage(fragment string) Response {
	var b bytes.Buffer
	b.Grow(len(pageHeader) + len(pageNav) + len(fragment) + len(pageFooter))
	b.WriteString(pageHeader)
	b.WriteString(pageNav)
	b.WriteString(fragment)
	b.WriteString(pageFooter)
	return Response{ContentType: contentTypeHTML, Body: b.Bytes()}
}

func hasToken(raw []byte, token string) bool {
	return bytes.Contains(raw, []byte(token))
}

// requestBody returns everything after the blank-line separator, or "" when
// the read did not include one.
func requestBody(raw []byte) string {
	_, body, ok := bytes.Cut(raw, []byte("\r\n\r\n"))
	if !ok {
		return ""
	}
	return string(body)
}
