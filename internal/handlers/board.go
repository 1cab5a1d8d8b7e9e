package handlers

import (
	"context"
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/synctask-dev/synctask/internal/realtime"
	"github.com/synctask-dev/synctask/internal/store"
)

// Board keeps an in-memory snapshot of the task board and leave calendar,
// refreshed wholesale whenever a change notification arrives. A failed
// reload keeps the previous snapshot; the next notification tries again.
type Board struct {
	store *store.Store

	mu     sync.RWMutex
	tasks  []store.TaskWithAssignees
	leaves []store.LeaveWithMember

	taskBridge  *realtime.Bridge
	leaveBridge *realtime.Bridge
}

type BoardResponse struct {
	Tasks   []store.TaskWithAssignees `json:"tasks"`
	Leaves  []store.LeaveWithMember   `json:"leaves"`
	Members []store.TeamMemberView    `json:"members"`
}

func NewBoard(st *store.Store, notifier *realtime.Notifier) *Board {
	board := &Board{
		store:  st,
		tasks:  []store.TaskWithAssignees{},
		leaves: []store.LeaveWithMember{},
	}

	board.taskBridge = realtime.NewBridge(notifier, realtime.TableTasks, board.reloadTasks)
	board.leaveBridge = realtime.NewBridge(notifier, realtime.TableLeaves, board.reloadLeaves)

	return board
}

// Start primes the snapshot and begins following change notifications until
// ctx ends.
func (b *Board) Start(ctx context.Context) {
	if err := b.reloadTasks(ctx); err != nil {
		log.Printf("Error loading initial tasks: %v", err)
	}
	if err := b.reloadLeaves(ctx); err != nil {
		log.Printf("Error loading initial leaves: %v", err)
	}

	b.taskBridge.Start(ctx)
	b.leaveBridge.Start(ctx)
}

func (b *Board) Stop() {
	b.taskBridge.Stop()
	b.leaveBridge.Stop()
}

func (b *Board) reloadTasks(ctx context.Context) error {
	tasks, err := b.store.GetTasks(ctx)

	if err != nil {
		return err
	}

	b.mu.Lock()
	b.tasks = tasks
	b.mu.Unlock()

	return nil
}

func (b *Board) reloadLeaves(ctx context.Context) error {
	leaves, err := b.store.GetLeaves(ctx)

	if err != nil {
		return err
	}

	b.mu.Lock()
	b.leaves = leaves
	b.mu.Unlock()

	return nil
}

// Get serves the snapshot plus a live member listing.
func (b *Board) Get(ctx *gin.Context) {
	members, err := b.store.Members().Members(ctx.Request.Context())

	if err != nil {
		log.Printf("Failed to fetch team members: %v", err)
		members = []store.TeamMemberView{}
	}

	b.mu.RLock()
	response := BoardResponse{
		Tasks:   b.tasks,
		Leaves:  b.leaves,
		Members: members,
	}
	b.mu.RUnlock()

	ctx.JSON(http.StatusOK, response)
}
