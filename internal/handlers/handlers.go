package handlers

import (
	"github.com/synctask-dev/synctask/internal/realtime"
	"github.com/synctask-dev/synctask/internal/reconciler"
	"github.com/synctask-dev/synctask/internal/store"
)

const (
	MemberSourceProfiles = "profiles"
	MemberSourceTable    = "table"
)

// Handler carries the wired dependencies for every endpoint. Nothing here is
// package-level state; the entry point constructs one and hands it to the
// router.
type Handler struct {
	store        *store.Store
	reconciler   *reconciler.Reconciler
	notifier     *realtime.Notifier
	hub          *realtime.Hub
	domain       string
	memberSource string
}

func New(st *store.Store, notifier *realtime.Notifier, hub *realtime.Hub, domain, memberSource string) *Handler {
	if memberSource != MemberSourceTable {
		memberSource = MemberSourceProfiles
	}

	return &Handler{
		store:        st,
		reconciler:   reconciler.New(st),
		notifier:     notifier,
		hub:          hub,
		domain:       domain,
		memberSource: memberSource,
	}
}

func (h *Handler) TableMode() bool {
	return h.memberSource == MemberSourceTable
}

func (h *Handler) Hub() *realtime.Hub {
	return h.hub
}
