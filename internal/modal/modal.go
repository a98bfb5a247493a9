// Package modal implements the URL-query codec for the admin UI's modal
// state. The whole state lives in two query parameters, `modal=<mode>-<entity>`
// and an optional `id`, so edit links are shareable and bookmarkable.
package modal

import (
	"fmt"
	"net/url"
	"strings"
)

// Mode is a modal interaction mode.
type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
	ModeView   Mode = "view"
)

// Entity is a modal target tag.
type Entity string

const (
	EntityClient   Entity = "client"
	EntityCampaign Entity = "campaign"
	EntityProvider Entity = "provider"
	EntityManager  Entity = "manager"
	EntityCompany  Entity = "company"
	EntityJobType  Entity = "job-type"
	EntityJob      Entity = "job"
)

const (
	modalParam = "modal"
	idParam    = "id"
)

// State is the decoded modal state. The zero value is closed.
type State struct {
	Open   bool   `json:"open"`
	Entity Entity `json:"entity,omitempty"`
	Mode   Mode   `json:"mode,omitempty"`
	ID     string `json:"id,omitempty"`
}

// Closed is the closed state.
var Closed = State{}

func validMode(m Mode) bool {
	switch m {
	case ModeCreate, ModeEdit, ModeView:
		return true
	}
	return false
}

func validEntity(e Entity) bool {
	switch e {
	case EntityClient, EntityCampaign, EntityProvider, EntityManager,
		EntityCompany, EntityJobType, EntityJob:
		return true
	}
	return false
}

// Open builds an open state. Invalid mode/entity combinations return Closed
// so callers cannot construct an unparseable link.
func Open(entity Entity, mode Mode, id string) State {
	if !validMode(mode) || !validEntity(entity) {
		return Closed
	}
	return State{Open: true, Entity: entity, Mode: mode, ID: id}
}

// Parse decodes the modal state from query values. Parsing is defensive: any
// unrecognized mode-entity combination decodes to Closed, silently.
func Parse(q url.Values) State {
	raw := q.Get(modalParam)
	if raw == "" {
		return Closed
	}

	// The entity tag may itself contain a hyphen (job-type), so split on
	// the first one only.
	mode, entity, found := strings.Cut(raw, "-")
	if !found {
		return Closed
	}

	s := State{Open: true, Entity: Entity(entity), Mode: Mode(mode), ID: q.Get(idParam)}
	if !validMode(s.Mode) || !validEntity(s.Entity) {
		return Closed
	}
	return s
}

// Apply returns a copy of q with the modal parameters set to this state
// (replace semantics). Applying a closed state is equivalent to Clear.
func (s State) Apply(q url.Values) url.Values {
	out := clone(q)
	if !s.Open {
		out.Del(modalParam)
		out.Del(idParam)
		return out
	}

	out.Set(modalParam, fmt.Sprintf("%s-%s", s.Mode, s.Entity))
	if s.ID != "" {
		out.Set(idParam, s.ID)
	} else {
		out.Del(idParam)
	}
	return out
}

// Clear returns a copy of q with all modal parameters stripped.
func Clear(q url.Values) url.Values {
	out := clone(q)
	out.Del(modalParam)
	out.Del(idParam)
	return out
}

func clone(q url.Values) url.Values {
	out := make(url.Values, len(q))
	for k, vs := range q {
		out[k] = append([]string(nil), vs...)
	}
	return out
}
