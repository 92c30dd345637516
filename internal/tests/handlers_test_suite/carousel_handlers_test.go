package handlers_test_suite

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	handler "github.com/rogerio-castellano/acme-storefront/internal/http/handlers"
	"github.com/rogerio-castellano/acme-storefront/internal/http/router"
)

func decodeCarousel(t *testing.T, w *httptest.ResponseRecorder) handler.CarouselResponse {
	t.Helper()
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
	var resp handler.CarouselResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding carousel: %v", err)
	}
	return resp
}

func TestGetCarouselHandler_WindowFollowsViewport(t *testing.T) {
	r := router.NewRouter()

	tests := []struct {
		width      string
		window     int
		indicators int
	}{
		{"500", 1, 12},
		{"800", 2, 11},
		{"1280", 3, 10},
		{"", 3, 10},
	}
	for _, tt := range tests {
		resp := decodeCarousel(t, newVisitor(r).do(http.MethodGet, "/api/carousel?w="+tt.width, nil))
		if resp.Window != tt.window || resp.Indicators != tt.indicators || len(resp.Visible) != tt.window {
			t.Errorf("w=%q: expected window %d and %d indicators, got %+v", tt.width, tt.window, tt.indicators, resp)
		}
		if resp.Index != 0 || resp.Total != 12 {
			t.Errorf("w=%q: unexpected cursor state %+v", tt.width, resp)
		}
	}
}

func TestAdvanceCarouselHandler_Wraps(t *testing.T) {
	v := newVisitor(router.NewRouter())

	nine := 9
	resp := decodeCarousel(t, v.do(http.MethodPut, "/api/carousel", handler.CarouselSetRequest{Index: &nine}))
	if resp.Index != 9 || resp.Visible[0].Name != "Spiral T-Shirt" {
		t.Fatalf("unexpected state after set: %+v", resp)
	}

	resp = decodeCarousel(t, v.do(http.MethodPost, "/api/carousel/advance", nil))
	if resp.Index != 0 {
		t.Errorf("expected the carousel to wrap to 0, got %d", resp.Index)
	}

	resp = decodeCarousel(t, v.do(http.MethodPost, "/api/carousel/advance", nil))
	if resp.Index != 1 {
		t.Errorf("expected index 1, got %d", resp.Index)
	}

	resp = decodeCarousel(t, v.do(http.MethodGet, "/api/carousel", nil))
	if resp.Index != 1 {
		t.Errorf("expected the cursor to be kept in the session, got %d", resp.Index)
	}
}

func TestSetCarouselHandler_OutOfRange(t *testing.T) {
	v := newVisitor(router.NewRouter())

	ten := 10
	if w := v.do(http.MethodPut, "/api/carousel", handler.CarouselSetRequest{Index: &ten}); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for index 10 with three visible, got %d", w.Code)
	}

	// A narrow viewport shows one item, so every position is reachable.
	eleven := 11
	resp := decodeCarousel(t, v.do(http.MethodPut, "/api/carousel?w=400", handler.CarouselSetRequest{Index: &eleven}))
	if resp.Index != 11 {
		t.Errorf("expected index 11, got %d", resp.Index)
	}

	if w := v.do(http.MethodPut, "/api/carousel", map[string]any{}); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing index, got %d", w.Code)
	}
}

func TestStreamCarouselHandler_TicksUntilClientLeaves(t *testing.T) {
	v := newVisitor(router.NewRouter())
	v.do(http.MethodGet, "/api/carousel", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	done := make(chan *httptest.ResponseRecorder, 1)
	go func() {
		done <- v.doCtx(ctx, http.MethodGet, "/api/carousel/stream?w=1280", nil)
	}()

	var w *httptest.ResponseRecorder
	select {
	case w = <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("stream did not end after the client left")
	}

	if ct := w.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("expected text/event-stream, got %q", ct)
	}
	body := w.Body.String()
	if !strings.HasPrefix(body, "event: state\n") {
		t.Errorf("expected an initial state event, got %q", body)
	}
	if strings.Count(body, "event: carousel\n") < 2 {
		t.Errorf("expected several carousel ticks, got %q", body)
	}

	lines := strings.Split(strings.TrimSpace(body), "\n")
	last := strings.TrimPrefix(lines[len(lines)-1], "data: ")
	var streamed handler.CarouselResponse
	if err := json.Unmarshal([]byte(last), &streamed); err != nil {
		t.Fatalf("error decoding last event %q: %v", last, err)
	}

	resp := decodeCarousel(t, v.do(http.MethodGet, "/api/carousel?w=1280", nil))
	if resp.Index != streamed.Index {
		t.Errorf("expected the streamed position %d to be saved, got %d", streamed.Index, resp.Index)
	}
}

func TestGetCarouselHandler_ResizePullsCursorBack(t *testing.T) {
	v := newVisitor(router.NewRouter())

	eleven := 11
	decodeCarousel(t, v.do(http.MethodPut, "/api/carousel?w=400", handler.CarouselSetRequest{Index: &eleven}))

	resp := decodeCarousel(t, v.do(http.MethodGet, "/api/carousel?w=1280", nil))
	if resp.Index != 9 || resp.Window != 3 {
		t.Errorf("expected the last reachable position 9 with three visible, got %+v", resp)
	}
	if resp.Visible[2].Name != "Cowboy Hat" {
		t.Errorf("expected the window to end at the last item, got %v", productNames(resp.Visible))
	}
}

// nextCarouselEvent reads SSE lines until the next "carousel" event.
func nextCarouselEvent(t *testing.T, sc *bufio.Scanner) handler.CarouselResponse {
	t.Helper()
	inCarousel := false
	for sc.Scan() {
		line := sc.Text()
		switch {
		case line == "event: carousel":
			inCarousel = true
		case inCarousel && strings.HasPrefix(line, "data: "):
			var resp handler.CarouselResponse
			require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &resp))
			return resp
		}
	}
	t.Fatalf("stream ended before a carousel event: %v", sc.Err())
	return handler.CarouselResponse{}
}

func TestStreamCarouselHandler_AdvancesFromIndicatorClick(t *testing.T) {
	handler.SetCarouselInterval(200 * time.Millisecond)
	t.Cleanup(func() { handler.SetCarouselInterval(10 * time.Millisecond) })

	r := router.NewRouter()
	v := newVisitor(r)
	v.do(http.MethodGet, "/api/carousel", nil)

	srv := httptest.NewServer(r)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/carousel/stream?w=1280", nil)
	require.NoError(t, err)
	req.AddCookie(v.cookie)
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	sc := bufio.NewScanner(res.Body)

	first := nextCarouselEvent(t, sc)
	require.Equal(t, 1, first.Index)

	five := 5
	decodeCarousel(t, v.do(http.MethodPut, "/api/carousel?w=1280", handler.CarouselSetRequest{Index: &five}))

	next := nextCarouselEvent(t, sc)
	if next.Index != 6 {
		t.Errorf("expected the tick after the indicator click to show 6, got %d", next.Index)
	}

	resp := decodeCarousel(t, v.do(http.MethodGet, "/api/carousel?w=1280", nil))
	if resp.Index < 6 {
		t.Errorf("expected the saved cursor to continue from the click, got %d", resp.Index)
	}
}
