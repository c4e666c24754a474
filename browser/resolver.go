// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package browser

import (
	"errors"

	"github.com/jongio/pac-read/logutil"
	"github.com/jongio/pac-read/registry"
)

// ErrNoBrowser is returned when no browser command is configured and none
// could be resolved from the registry.
var ErrNoBrowser = errors.New("no browser command found; set browser.command in pac-read.yaml")

// Options controls a resolution.
type Options struct {
	// Exhaustive runs every strategy and logs every match. The chosen
	// candidate is the same as in a normal run.
	Exhaustive bool
}

// Resolution is the outcome of Resolve.
type Resolution struct {
	Chosen     Candidate   `json:"chosen"`
	Found      bool        `json:"found"`
	Alternates []Candidate `json:"alternates,omitempty"`
}

// Template returns the chosen template, if any.
func (r Resolution) Template() (string, bool) {
	return r.Chosen.Template, r.Found
}

// Resolver searches a registry for the browser launch command.
type Resolver struct {
	Registry   registry.Registry
	Strategies []Strategy
	Logger     *logutil.ComponentLogger
}

// NewResolver creates a resolver with the default strategies.
func NewResolver(reg registry.Registry) *Resolver {
	return &Resolver{
		Registry:   reg,
		Strategies: DefaultStrategies(),
		Logger:     logutil.NewLogger("resolver"),
	}
}

// Resolve runs the strategies in order. Without Exhaustive it returns at the
// first candidate and later strategies are never invoked.
func (r *Resolver) Resolve(opts Options) Resolution {
	log := r.Logger
	if log == nil {
		log = logutil.NewLogger("resolver")
	}
	log = log.WithOperation("resolve")

	var res Resolution
	for _, s := range r.Strategies {
		stratLog := log.WithFields("strategy", s.Name)
		matched := false

		for c := range s.Lookup(Source{Registry: r.Registry, Log: stratLog}) {
			matched = true
			if !res.Found {
				res.Chosen, res.Found = c, true
				stratLog.Info("browser command found", "path", c.Path, "template", c.Template)
				if !opts.Exhaustive {
					return res
				}
				continue
			}
			res.Alternates = append(res.Alternates, c)
			stratLog.Info("alternate browser command", "path", c.Path, "template", c.Template)
		}

		if !matched {
			stratLog.Debug("strategy found nothing")
		}
	}

	if !res.Found {
		log.Warn("no browser command resolved", "strategies", len(r.Strategies))
	}
	return res
}
