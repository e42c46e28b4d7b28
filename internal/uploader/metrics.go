package uploader

import (
	"errors"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	uploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "postboard_uploads_total",
			Help: "Upload attempts by outcome",
		},
		[]string{"outcome"},
	)

	uploadedBytesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "postboard_uploaded_bytes_total",
			Help: "Bytes written by accepted uploads",
		},
	)

	uploadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "postboard_upload_duration_seconds",
			Help:    "Time spent handling one upload",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
		},
	)

	partialsRemovedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "postboard_upload_partials_removed_total",
			Help: "Stale partial files removed by the sweeper",
		},
	)
)

func outcomeOf(err error) string {
	if err == nil {
		return "accepted"
	}
	var uerr *UploadError
	if errors.As(err, &uerr) {
		return strings.ToLower(uerr.Code)
	}
	return "internal_error"
}
