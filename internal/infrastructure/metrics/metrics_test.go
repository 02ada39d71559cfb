package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestNewRegistersServiceMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()

	// promauto registers against the default registerer; swap it for the
	// duration of the test so Gather can inspect what New produced.
	origRegisterer := prometheus.DefaultRegisterer
	origGatherer := prometheus.DefaultGatherer
	prometheus.DefaultRegisterer = registry
	prometheus.DefaultGatherer = registry
	defer func() {
		prometheus.DefaultRegisterer = origRegisterer
		prometheus.DefaultGatherer = origGatherer
	}()

	m := New()

	m.TransfersCreated.Inc()
	m.AccountsRegistered.Inc()
	m.LedgerEntries.WithLabelValues("SUCCESS").Inc()
	m.HTTPRequests.WithLabelValues("POST", "/api/transactions/transfer", "200").Inc()

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}
	if len(families) == 0 {
		t.Fatal("expected registered metrics, got none")
	}

	seen := make(map[string]bool, len(families))
	for _, f := range families {
		if !strings.HasPrefix(f.GetName(), "lendenclub_") {
			t.Errorf("metric %q missing service prefix", f.GetName())
		}
		seen[f.GetName()] = true
	}

	for _, name := range []string{
		"lendenclub_transfers_created_total",
		"lendenclub_accounts_registered_total",
		"lendenclub_ledger_entries_total",
		"lendenclub_http_requests_total",
	} {
		if !seen[name] {
			t.Errorf("expected metric %s to be registered", name)
		}
	}
}
