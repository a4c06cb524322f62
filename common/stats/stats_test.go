package stats

import (
	"encoding/json"
	"testing"
	"time"
)

func TestPrecisionChange(t *testing.T) {
	stat := DefaultStatsReceiver().(*defaultStatsReceiver)
	if stat.precision != time.Nanosecond {
		t.Fatal("Default precision should be nanos.")
	}

	statp := stat.Precision(time.Millisecond).(*defaultStatsReceiver)
	if stat.precision != time.Nanosecond {
		t.Fatal("Default precision should still nanos.")
	}
	if statp.precision != time.Millisecond {
		t.Fatal("New stat precision should be millis.")
	}
}

func TestScopeChange(t *testing.T) {
	stat := DefaultStatsReceiver().(*defaultStatsReceiver)
	if len(stat.scope) != 0 {
		t.Fatal("Default scope should be empty.")
	}

	statp := stat.Scope("a/b", "c").(*defaultStatsReceiver)
	if len(stat.scope) != 0 {
		t.Fatal("Default scope should still empty.")
	}
	if len(statp.scope) != 2 || statp.scope[0] != "a_SLASH_b" || statp.scope[1] != "c" {
		t.Fatal("Invalid scope value: ", statp.scope)
	}
	if statp.scopedName("d") != "a_SLASH_b/c/d" {
		t.Fatal("Invalid scope name: " + statp.scopedName("d"))
	}
}

func TestSiblingScopesDoNotAlias(t *testing.T) {
	parent := DefaultStatsReceiver().Scope("token").(*defaultStatsReceiver)
	a := parent.Scope("a").(*defaultStatsReceiver)
	b := parent.Scope("b").(*defaultStatsReceiver)
	if a.scopedName("x") != "token/a/x" || b.scopedName("x") != "token/b/x" {
		t.Fatalf("scopes leaked into each other: %s %s", a.scopedName("x"), b.scopedName("x"))
	}
}

func TestCounterSharedAcrossLookups(t *testing.T) {
	stat := DefaultStatsReceiver().Scope(TokenScope)
	stat.Counter(TokenIssueCounter).Inc(1)
	stat.Counter(TokenIssueCounter).Inc(1)
	if c := stat.Counter(TokenIssueCounter).Count(); c != 2 {
		t.Fatalf("expected 2, got %d", c)
	}
}

func TestMarshal(t *testing.T) {
	defer func() { Time = DefaultStatsTime() }()

	reg := NewFinagleStatsRegistry()
	reg.GetOrRegister("counter", NewCounter()).(Counter).Inc(1)

	Time = NewTestTime(time.Unix(0, 0), time.Nanosecond*5)
	reg.GetOrRegister("latency", NewLatency()).(Latency).Time().Stop()
	Time = NewTestTime(time.Unix(0, 0), time.Nanosecond*10)
	reg.GetOrRegister("latency", NewLatency()).(Latency).Time().Stop()

	bytes, err := reg.(MarshalerPretty).MarshalJSONPretty()
	expected :=
		`{
  "counter": 1,
  "latency.avg": 7.5,
  "latency.count": 2,
  "latency.max": 10,
  "latency.min": 5,
  "latency.p50": 7.5,
  "latency.p90": 10,
  "latency.p99": 10,
  "latency.sum": 15
}`
	if string(bytes) != expected {
		t.Fatal("Wrong json marshal output: ", string(bytes), err)
	}
}

func TestNilReceiver(t *testing.T) {
	stat := NilStatsReceiver().Scope("x")
	stat.Counter("c").Inc(5)
	stat.Latency("l").Time().Stop()
	if stat.Counter("c").Count() != 0 {
		t.Fatal("nil counter should not count")
	}
	if string(stat.Render(true)) != "{}" {
		t.Fatalf("nil receiver should render empty, got %s", stat.Render(true))
	}
}

func TestReceiverRendersLatency(t *testing.T) {
	defer func() { Time = DefaultStatsTime() }()
	Time = NewTestTime(time.Unix(0, 0), 3*time.Millisecond)

	stat := DefaultStatsReceiver().Scope(RequestScope)
	stat.Counter(RequestSentCounter).Inc(1)
	stat.Precision(time.Millisecond).Latency(RequestLatency_ms).Time().Stop()
	stat.Precision(time.Millisecond).Latency(RequestLatency_ms).Time().Stop()

	if n := stat.Latency(RequestLatency_ms).Capture().Count(); n != 2 {
		t.Fatalf("expected the same registered latency on every lookup, got count %d", n)
	}
	var out map[string]interface{}
	if err := json.Unmarshal(stat.Render(false), &out); err != nil {
		t.Fatalf("render is not json: %v", err)
	}
	if out["request/latency_ms.count"] != float64(2) || out["request/latency_ms.max"] != float64(3) {
		t.Fatalf("latency missing from render: %v", out)
	}
}
