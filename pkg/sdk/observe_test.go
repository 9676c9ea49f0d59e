package dinerec

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func testStart() time.Time { return time.Now() }

func TestRegisterOrReuse_IncompatibleType(t *testing.T) {
	reg := prometheus.NewRegistry()
	gauge := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "dinerec",
		Subsystem: "sdk",
		Name:      "operations_total",
		Help:      "Total SDK operations by type and status.",
	}, []string{"operation", "status"})
	reg.MustRegister(gauge)

	if _, err := newSDKMetrics(reg); err == nil {
		t.Fatal("expected error for a collector of a different type")
	}
}

func TestNewObserver_NoRegistry(t *testing.T) {
	o, err := newObserver(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if o.metrics != nil {
		t.Error("metrics should be disabled without a registerer")
	}
	o.observe("recommend", time.Now(), nil)
}
