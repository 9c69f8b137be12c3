package logfields

import (
	"log/slog"
	"testing"
)

// TestHelperKeyNames verifies string-based helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    slog.Attr
	}{
		{"Repository", KeyRepo, "acme/widgets", Repository("acme/widgets")},
		{"Path", KeyPath, "/tmp/x.md", Path("/tmp/x.md")},
		{"URL", KeyURL, "https://github.com", URL("https://github.com")},
		{"Shape", KeyShape, "commit", Shape("commit")},
		{"Outcome", KeyOutcome, "rewritten", Outcome("rewritten")},
		{"Reason", KeyReason, "diff_view", Reason("diff_view")},
		{"Filter", KeyFilter, "commit_mention", Filter("commit_mention")},
		{"Kind", KeyKind, "markdown", Kind("markdown")},
		{"RequestID", KeyRequestID, "rid", RequestID("rid")},
		{"Method", KeyMethod, "POST", Method("POST")},
		{"RemoteAddr", KeyRemoteAddr, "1.2.3.4", RemoteAddr("1.2.3.4")},
		{"UserAgent", KeyUserAgent, "ua", UserAgent("ua")},
		{"Address", KeyAddress, ":8088", Address(":8088")},
		{"Remote", KeyRemote, "origin", Remote("origin")},
	}

	for _, tc := range cases {
		if tc.attr.Key != tc.attrKey {
			// Key drift would break log ingestion schemas.
			t.Fatalf("%s: expected key %s, got %s", tc.name, tc.attrKey, tc.attr.Key)
		}
		if got := tc.attr.Value.String(); got != tc.attrVal {
			t.Fatalf("%s: expected value %s, got %v", tc.name, tc.attrVal, got)
		}
	}
}

// TestNumericHelpers verifies keys for numeric & float helpers.
func TestNumericHelpers(t *testing.T) {
	if v := Status(200); v.Key != KeyStatus {
		t.Fatalf("Status key mismatch: %s", v.Key)
	}
	if v := ResponseSize(42); v.Key != KeyResponseSz {
		t.Fatalf("ResponseSize key mismatch: %s", v.Key)
	}
	if v := DurationMS(12.5); v.Key != KeyDurationMS {
		t.Fatalf("DurationMS key mismatch: %s", v.Key)
	}
	if v := Rewritten(3); v.Key != KeyRewritten || v.Value.Int64() != 3 {
		t.Fatalf("Rewritten mismatch: %v", v)
	}
	if v := Visited(1); v.Key != KeyVisited {
		t.Fatalf("Visited key mismatch: %s", v.Key)
	}
	if v := Accepted(1); v.Key != KeyAccepted {
		t.Fatalf("Accepted key mismatch: %s", v.Key)
	}
}

// TestErrorHelper ensures Error() handles nil and non-nil errors predictably.
func TestErrorHelper(t *testing.T) {
	attr := Error(nil)
	if attr.Key != KeyError {
		t.Fatalf("Error key mismatch: %s", attr.Key)
	}
	if attr.Value.String() != "" {
		t.Fatalf("Expected empty error string, got %s", attr.Value.String())
	}
	attr = Error(errTest{})
	if attr.Value.String() != "err-test" {
		t.Fatalf("Expected 'err-test', got %s", attr.Value.String())
	}
}

type errTest struct{}

func (e errTest) Error() string { return "err-test" }
