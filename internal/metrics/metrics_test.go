package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordRegistration(t *testing.T) {
	before := testutil.ToFloat64(Registrations.WithLabelValues(OutcomeDuplicate))
	RecordRegistration(OutcomeDuplicate)
	assert.Equal(t, before+1, testutil.ToFloat64(Registrations.WithLabelValues(OutcomeDuplicate)))
}

func TestRegisterMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	RegisterMetrics(reg)

	RecordRegistration(OutcomeSuccess)
	RecordPasswordHash(40 * time.Millisecond)

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "registration_attempts_total")
	assert.Contains(t, names, "registration_password_hash_duration_seconds")
}
