package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	LessonsGenerated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "attendance", Name: "lessons_generated_total", Help: "Lessons created by schedule expansion",
	})
	AttendanceReports = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "attendance", Name: "reports_total", Help: "Submitted attendance reports",
	})
	PhotoUploads = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "attendance", Name: "photo_uploads_total", Help: "Photo uploads by result",
	}, []string{"result"})
	HandlerErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "attendance", Name: "handler_errors_total", Help: "Handler errors",
	})
	DBPing = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "attendance", Name: "db_ping_seconds", Help: "DB ping latency",
		Buckets: prometheus.DefBuckets,
	})
	UploadDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "attendance", Name: "photo_upload_seconds", Help: "Image host upload latency",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(LessonsGenerated, AttendanceReports, PhotoUploads, HandlerErrors, DBPing, UploadDuration)
}

func Handler() http.Handler { return promhttp.Handler() }

func ObserveDBPing(d time.Duration) { DBPing.Observe(d.Seconds()) }

func ObserveUpload(d time.Duration, err error) {
	UploadDuration.Observe(d.Seconds())
	if err != nil {
		PhotoUploads.WithLabelValues("error").Inc()
	} else {
		PhotoUploads.WithLabelValues("ok").Inc()
	}
}
