package stream

import "testing"

func TestWSURL(t *testing.T) {
	got := wsURL("https://paper-api.alpaca.markets")
	want := "wss://paper-api.alpaca.markets/stream"
	if got != want {
		t.Errorf("wsURL = %q, want %q", got, want)
	}

	got = wsURL("https://api.alpaca.markets/")
	want = "wss://api.alpaca.markets/stream"
	if got != want {
		t.Errorf("wsURL with trailing slash = %q, want %q", got, want)
	}
}

func TestParseFrameAuthorization(t *testing.T) {
	raw := []byte(`{"stream":"authorization","data":{"status":"authorized","action":"authenticate"}}`)
	_, kind, err := parseFrame(raw)
	if err != nil {
		t.Fatal(err)
	}
	if kind != frameAuthorized {
		t.Errorf("expected authorized frame, got %d", kind)
	}

	raw = []byte(`{"stream":"authorization","data":{"status":"unauthorized"}}`)
	_, kind, err = parseFrame(raw)
	if err != nil {
		t.Fatal(err)
	}
	if kind != frameUnauthorized {
		t.Errorf("expected unauthorized frame, got %d", kind)
	}
}

func TestParseFrameTradeUpdate(t *testing.T) {
	raw := []byte(`{"stream":"trade_updates","data":{"event":"fill","order":{"id":"abc-123","status":"filled"}}}`)
	update, kind, err := parseFrame(raw)
	if err != nil {
		t.Fatal(err)
	}
	if kind != frameTradeUpdate {
		t.Fatalf("expected trade update frame, got %d", kind)
	}
	if update.Event != "fill" || update.OrderID != "abc-123" || update.Status != "filled" {
		t.Errorf("unexpected update: %+v", update)
	}
}

func TestParseFrameIgnoresOtherStreams(t *testing.T) {
	raw := []byte(`{"stream":"listening","data":{"streams":["trade_updates"]}}`)
	_, kind, err := parseFrame(raw)
	if err != nil {
		t.Fatal(err)
	}
	if kind != frameOther {
		t.Errorf("expected other frame, got %d", kind)
	}
}

func TestParseFrameMalformed(t *testing.T) {
	if _, _, err := parseFrame([]byte("not json")); err == nil {
		t.Error("expected error for malformed frame")
	}
}
