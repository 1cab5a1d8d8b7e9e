package store

import (
	"context"
	"fmt"
	"log"

	"github.com/synctask-dev/synctask/internal/models"
	"github.com/synctask-dev/synctask/internal/types"
	"gorm.io/datatypes"
)

type NewTask struct {
	Title       string
	Description string
	Status      string
	Deadline    *datatypes.Date
	CreatedBy   uint
}

type TaskUpdates struct {
	Title       *string
	Description *string
	Status      *string
	Deadline    *datatypes.Date
}

// GetTasks returns every task, newest first, with assignees resolved. The
// batch always costs three queries: tasks, join rows for the task-id set,
// members for the member-id set.
func (s *Store) GetTasks(ctx context.Context) ([]TaskWithAssignees, error) {
	var tasks []models.Task

	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("fetch tasks: %w", err)
	}

	if len(tasks) == 0 {
		return []TaskWithAssignees{}, nil
	}

	taskIDs := make([]uint, 0, len(tasks))

	for _, task := range tasks {
		taskIDs = append(taskIDs, task.ID)
	}

	grouped, err := s.assigneesForTasks(ctx, taskIDs)

	if err != nil {
		// Degrade to tasks without assignees rather than losing the board.
		log.Printf("Error fetching assignees: %v", err)
		grouped = map[uint][]TeamMemberView{}
	}

	views := make([]TaskWithAssignees, 0, len(tasks))

	for _, task := range tasks {
		views = append(views, taskView(task, grouped[task.ID]))
	}

	return views, nil
}

func (s *Store) assigneesForTasks(ctx context.Context, taskIDs []uint) (map[uint][]TeamMemberView, error) {
	var rows []models.TaskAssignee

	if err := s.db.WithContext(ctx).Where("task_id IN ?", taskIDs).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("fetch assignee rows: %w", err)
	}

	memberIDSet := make(map[uint]struct{}, len(rows))
	memberIDs := make([]uint, 0, len(rows))

	for _, row := range rows {
		if _, seen := memberIDSet[row.TeamMemberID]; seen {
			continue
		}
		memberIDSet[row.TeamMemberID] = struct{}{}
		memberIDs = append(memberIDs, row.TeamMemberID)
	}

	members, err := s.members.MembersByID(ctx, memberIDs)

	if err != nil {
		return nil, err
	}

	return groupAssignees(rows, members), nil
}

func (s *Store) GetTask(ctx context.Context, taskID uint) (models.Task, error) {
	var task models.Task

	if err := s.db.WithContext(ctx).First(&task, taskID).Error; err != nil {
		return models.Task{}, fmt.Errorf("fetch task: %w", err)
	}

	return task, nil
}

// GetTasksByPerson filters the full board by assignee first name.
func (s *Store) GetTasksByPerson(ctx context.Context, firstName string) ([]TaskWithAssignees, error) {
	tasks, err := s.GetTasks(ctx)

	if err != nil {
		return nil, err
	}

	filtered := make([]TaskWithAssignees, 0, len(tasks))

	for _, task := range tasks {
		for _, assignee := range task.Assignees {
			if assignee.FirstName == firstName {
				filtered = append(filtered, task)
				break
			}
		}
	}

	return filtered, nil
}

// CreateTask inserts the task, then the assignee join rows. A join-row
// failure is logged and the task is returned anyway; there is no compensating
// rollback for this multi-step write.
func (s *Store) CreateTask(ctx context.Context, fields NewTask, assigneeIDs []uint) (TaskWithAssignees, error) {
	status := fields.Status

	if status == "" {
		status = types.StatusTodo
	}

	task := models.Task{
		Title:       fields.Title,
		Description: fields.Description,
		Status:      status,
		Deadline:    fields.Deadline,
		CreatedBy:   fields.CreatedBy,
	}

	if err := s.db.WithContext(ctx).Create(&task).Error; err != nil {
		return TaskWithAssignees{}, fmt.Errorf("create task: %w", err)
	}

	if len(assigneeIDs) > 0 {
		rows := make([]models.TaskAssignee, 0, len(assigneeIDs))

		for _, memberID := range assigneeIDs {
			rows = append(rows, models.TaskAssignee{TaskID: task.ID, TeamMemberID: memberID})
		}

		if err := s.db.WithContext(ctx).Create(&rows).Error; err != nil {
			log.Printf("Error adding assignees to task %d: %v", task.ID, err)
		}
	}

	assignees, err := s.members.MembersByID(ctx, assigneeIDs)

	if err != nil {
		log.Printf("Error resolving assignees for task %d: %v", task.ID, err)
		assignees = []TeamMemberView{}
	}

	return taskView(task, assignees), nil
}

func (s *Store) UpdateTask(ctx context.Context, taskID uint, updates TaskUpdates) (models.Task, error) {
	fields := make(map[string]interface{})

	if updates.Title != nil {
		fields["title"] = *updates.Title
	}
	if updates.Description != nil {
		fields["description"] = *updates.Description
	}
	if updates.Status != nil {
		fields["status"] = *updates.Status
	}
	if updates.Deadline != nil {
		fields["deadline"] = *updates.Deadline
	}

	if len(fields) > 0 {
		if err := s.db.WithContext(ctx).Model(&models.Task{}).Where("id = ?", taskID).Updates(fields).Error; err != nil {
			return models.Task{}, fmt.Errorf("update task: %w", err)
		}
	}

	var task models.Task

	if err := s.db.WithContext(ctx).First(&task, taskID).Error; err != nil {
		return models.Task{}, fmt.Errorf("reload task: %w", err)
	}

	return task, nil
}

// UpdateTaskStatus is a dumb single-row mutator. Transition legality
// (one step forward or back, never todo to done) is the caller's business.
func (s *Store) UpdateTaskStatus(ctx context.Context, taskID uint, status string) (models.Task, error) {
	if err := s.db.WithContext(ctx).Model(&models.Task{}).Where("id = ?", taskID).Update("status", status).Error; err != nil {
		return models.Task{}, fmt.Errorf("update task status: %w", err)
	}

	var task models.Task

	if err := s.db.WithContext(ctx).First(&task, taskID).Error; err != nil {
		return models.Task{}, fmt.Errorf("reload task: %w", err)
	}

	return task, nil
}

// UpdateTaskAssignees replaces the assignee set wholesale.
func (s *Store) UpdateTaskAssignees(ctx context.Context, taskID uint, assigneeIDs []uint) error {
	if err := s.db.WithContext(ctx).Where("task_id = ?", taskID).Delete(&models.TaskAssignee{}).Error; err != nil {
		return fmt.Errorf("remove assignees: %w", err)
	}

	if len(assigneeIDs) == 0 {
		return nil
	}

	rows := make([]models.TaskAssignee, 0, len(assigneeIDs))

	for _, memberID := range assigneeIDs {
		rows = append(rows, models.TaskAssignee{TaskID: taskID, TeamMemberID: memberID})
	}

	if err := s.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return fmt.Errorf("insert assignees: %w", err)
	}

	return nil
}

// DeleteTask removes the task row; its join rows go with it through the
// foreign-key cascade, not application code.
func (s *Store) DeleteTask(ctx context.Context, taskID uint) error {
	if err := s.db.WithContext(ctx).Delete(&models.Task{}, taskID).Error; err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	return nil
}
