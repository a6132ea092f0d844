package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	gs "github.com/dmitrijs2005/gophtasks/internal/server/grpc"
)

// List prints the user's tasks, optionally narrowed by status and search.
func (a *App) List(ctx context.Context, status, search string) error {
	tasks, err := a.api.ListTasks(ctx, status, search)
	if err != nil {
		return err
	}

	if len(tasks) == 0 {
		a.printf("No tasks\n")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATUS\tTITLE")
	for _, t := range tasks {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", t.ID, t.Status, t.Title)
	}
	return tw.Flush()
}

// Add prompts for a title and a multi-line description and creates a task.
func (a *App) Add(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Enter title", a.out)
	if err != nil {
		return err
	}

	description, err := GetMultiline(a.reader, "Enter description", a.out)
	if err != nil {
		return err
	}

	task, err := a.api.CreateTask(ctx, title, description)
	if err != nil {
		return err
	}

	a.printf("Created task %s\n", task.ID)
	return nil
}

func (a *App) Show(ctx context.Context, id string) error {
	task, err := a.api.GetTask(ctx, id)
	if err != nil {
		return err
	}
	a.printTask(task)
	return nil
}

func (a *App) SetStatus(ctx context.Context, id, status string) error {
	task, err := a.api.UpdateTaskStatus(ctx, id, status)
	if err != nil {
		return err
	}
	a.printTask(task)
	return nil
}

func (a *App) Delete(ctx context.Context, id string) error {
	if err := a.api.DeleteTask(ctx, id); err != nil {
		return err
	}
	a.printf("Deleted task %s\n", id)
	return nil
}

func (a *App) printTask(t *gs.Task) {
	a.printf("ID:          %s\nTitle:       %s\nStatus:      %s\nDescription:\n%s\n", t.ID, t.Title, t.Status, t.Description)
}
