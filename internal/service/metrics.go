package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	kindFriendActivity = "friend_activity"
	kindReviewDigest   = "review_digest"

	outcomeAccepted = "accepted"
	outcomeFailed   = "failed"
)

var smsDispatchTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "sms_dispatch_total",
		Help: "Outbound SMS dispatch attempts by message kind and outcome",
	},
	[]string{"kind", "outcome"},
)
