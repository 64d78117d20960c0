package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Значения label "result"
const (
	ResultOK      = "ok"
	ResultError   = "error"
	ResultInvalid = "invalid"
	ResultEmpty   = "empty"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "imagemailer_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "imagemailer_http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"path"})

	SearchPagesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "imagemailer_search_pages_total",
		Help: "Search API pages requested, by result",
	}, []string{"result"})

	ImageCandidatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "imagemailer_image_candidates_total",
		Help: "Candidate image URLs processed, by stage and result",
	}, []string{"stage", "result"})

	AttachmentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "imagemailer_attachments_total",
		Help: "Images packaged into emails, by mode and result",
	}, []string{"mode", "result"})

	EmailsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "imagemailer_emails_total",
		Help: "Emails handed to the SMTP relay, by result",
	}, []string{"result"})
)
