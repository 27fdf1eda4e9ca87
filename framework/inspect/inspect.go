// Package inspect exposes a container over HTTP: registered labels, their
// resolution state, and on-demand resolution.
//
//	GET  /_container/services
//	GET  /_container/services/{label}
//	POST /_container/services/{label}/resolve
//
// Only string labels can be addressed by URL.
package inspect

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"sync"

	"github.com/km-arc/simple-inject/framework/container"
	gohttp "github.com/km-arc/simple-inject/framework/http"
	"github.com/km-arc/simple-inject/framework/routing"
)

// Prefix is the path under which the inspector is mounted.
const Prefix = "/_container"

// Service describes one registered label.
type Service struct {
	Label    string `json:"label"`
	Resolved bool   `json:"resolved"`
	Type     string `json:"type,omitempty"`
}

// Inspector serves container introspection. Containers are not safe for
// concurrent use, so every handler holds mu while touching c.
type Inspector struct {
	mu sync.Mutex
	c  *container.Container
}

// Mount creates an Inspector for c and registers its routes on r. It is
// registered in the container as "inspector" with signature
// [container.SelfLabel, "router", Class(inspect.Mount)].
func Mount(c *container.Container, r *routing.Router) *Inspector {
	i := &Inspector{c: c}
	r.Prefix(Prefix, func(sub *routing.Router) {
		sub.Get("/services", i.list)
		sub.Get("/services/{label}", i.show)
		sub.Post("/services/{label}/resolve", i.resolve)
	})
	return i
}

// Services returns every registered label, sorted by its text form.
func (i *Inspector) Services() []Service {
	i.mu.Lock()
	defer i.mu.Unlock()

	labels := i.c.Labels()
	out := make([]Service, 0, len(labels))
	for _, l := range labels {
		out = append(out, Service{Label: fmt.Sprint(l), Resolved: i.c.Resolved(l)})
	}
	slices.SortFunc(out, func(a, b Service) int { return strings.Compare(a.Label, b.Label) })
	return out
}

func (i *Inspector) state(label string) (bound, resolved bool) {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.c.Bound(label), i.c.Resolved(label)
}

// get holds mu across the whole resolution; a panicking constructor still
// releases it.
func (i *Inspector) get(label string) (any, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.c.Get(label)
}

func (i *Inspector) list(w http.ResponseWriter, _ *http.Request) {
	gohttp.NewResponse(w).Success(i.Services())
}

func (i *Inspector) show(w http.ResponseWriter, r *http.Request) {
	res := gohttp.NewResponse(w)
	label := routing.Param(r, "label")

	bound, resolved := i.state(label)

	if !bound {
		res.NotFound(fmt.Sprintf("%v: %s", container.ErrRegistration, label))
		return
	}
	res.Success(Service{Label: label, Resolved: resolved})
}

func (i *Inspector) resolve(w http.ResponseWriter, r *http.Request) {
	res := gohttp.NewResponse(w)
	label := routing.Param(r, "label")

	instance, err := i.get(label)

	switch {
	case err == nil:
		res.Success(Service{Label: label, Resolved: true, Type: fmt.Sprintf("%T", instance)})
	case errors.Is(err, container.ErrRegistration):
		res.NotFound(err.Error())
	case errors.Is(err, container.ErrCircularDependency):
		res.Conflict(err.Error())
	default:
		res.ServerError(err.Error())
	}
}
