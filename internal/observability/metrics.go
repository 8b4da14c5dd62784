// Package observability provides application-level prometheus metrics.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RegistrationsTotal counts account registrations by outcome.
	RegistrationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_registrations_total",
		Help: "Total number of registration attempts by outcome",
	}, []string{"outcome"})

	// LoginsTotal counts login attempts by outcome.
	LoginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_logins_total",
		Help: "Total number of login attempts by outcome",
	}, []string{"outcome"})

	// PostsCreatedTotal counts published posts.
	PostsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inkwell_posts_created_total",
		Help: "Total number of posts created",
	})

	// CommentsCreatedTotal counts persisted comments.
	CommentsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inkwell_comments_created_total",
		Help: "Total number of comments created",
	})

	// ContactMessagesTotal counts contact form deliveries by outcome.
	ContactMessagesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_contact_messages_total",
		Help: "Total number of contact form submissions by delivery outcome",
	}, []string{"outcome"})
)
