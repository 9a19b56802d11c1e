package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/platform/logger"
)

func TestNewMetricsManager_Counters(t *testing.T) {
	m := NewMetricsManager("hostle-cart")

	m.ListingsCreatedTotal.Inc()
	m.StatusChangesTotal.WithLabelValues("approved").Inc()
	m.StatusChangesTotal.WithLabelValues("approved").Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ListingsCreatedTotal))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.StatusChangesTotal.WithLabelValues("approved")))
}

func TestNewMetricsServer(t *testing.T) {
	log := logger.NewNop()
	assert.Nil(t, NewMetricsServer("", log, nil))

	m := NewMetricsManager("hostlecart")
	m.ImagesUploadedTotal.Add(3)

	srv := NewMetricsServer("9092", log, m.Registry)
	require.NotNil(t, srv)
	assert.Equal(t, ":9092", srv.Addr)

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Result().Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "hostlecart_images_uploaded_total 3")
}
