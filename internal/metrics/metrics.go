package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Regeneration reasons.
const (
	ReasonInitial  = "initial"
	ReasonStale    = "stale"
	ReasonForced   = "forced"
	ReasonFeedback = "feedback"
)

// Collector owns the planner's Prometheus collectors on a private registry.
type Collector struct {
	registry *prometheus.Registry

	regenerations     *prometheus.CounterVec
	generationSeconds prometheus.Histogram
	feedbackEvents    *prometheus.CounterVec
	shoppingItems     prometheus.Gauge
}

// NewCollector creates and registers every collector.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		regenerations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "meal_planner_plan_regenerations_total",
				Help: "Number of weekly plans generated",
			},
			[]string{"reason"},
		),
		generationSeconds: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "meal_planner_plan_generation_seconds",
				Help:    "Time taken to generate a weekly plan",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
		),
		feedbackEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "meal_planner_feedback_events_total",
				Help: "Number of feedback events submitted",
			},
			[]string{"type"},
		),
		shoppingItems: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "meal_planner_shopping_list_items",
				Help: "Number of items on the current shopping list",
			},
		),
	}

	c.registry.MustRegister(c.regenerations, c.generationSeconds, c.feedbackEvents, c.shoppingItems)
	return c
}

// RecordRegeneration counts one published plan.
func (c *Collector) RecordRegeneration(reason string) {
	c.regenerations.WithLabelValues(reason).Inc()
}

// ObserveGeneration records how long one plan generation took.
func (c *Collector) ObserveGeneration(d time.Duration) {
	c.generationSeconds.Observe(d.Seconds())
}

// RecordFeedback counts one feedback event of the given type.
func (c *Collector) RecordFeedback(feedbackType string) {
	c.feedbackEvents.WithLabelValues(feedbackType).Inc()
}

// SetShoppingItems sets the shopping list size.
func (c *Collector) SetShoppingItems(n int) {
	c.shoppingItems.Set(float64(n))
}

// Registry exposes the private registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
