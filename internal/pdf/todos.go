package pdf

import (
	"io"
	"sort"
	"time"

	"github.com/asvarma/vivah/internal/model"
)

var priorityRank = map[model.Priority]int{
	model.PriorityHigh:   0,
	model.PriorityMedium: 1,
	model.PriorityLow:    2,
}

// sortedTodos returns todos with incomplete tasks first, each half ordered
// by priority high to low.
func sortedTodos(todos []model.TodoItem) []model.TodoItem {
	out := make([]model.TodoItem, len(todos))
	copy(out, todos)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IsCompleted != out[j].IsCompleted {
			return !out[i].IsCompleted
		}
		return priorityRank[out[i].Priority] < priorityRank[out[j].Priority]
	})
	return out
}

// Todos renders the task list as a single table.
func Todos(w io.Writer, todos []model.TodoItem, now time.Time) error {
	doc := newDoc()
	doc.AddPage()
	pageHeader(doc, "Wedding To-Do List", now)

	rows := make([][]string, 0, len(todos))
	for _, todo := range sortedTodos(todos) {
		status := "[ ]"
		if todo.IsCompleted {
			status = "[x]"
		}
		due := "-"
		if todo.DueDate != nil {
			due = formatDate(*todo.DueDate)
		}
		rows = append(rows, []string{
			status,
			todo.Task,
			title(string(todo.Priority)),
			due,
		})
	}

	table(doc, contentFrom, []string{"Status", "Task", "Priority", "Due Date"},
		[]float64{18, 100, 24, 40}, rows, headerColor)

	return finish(doc, w)
}
