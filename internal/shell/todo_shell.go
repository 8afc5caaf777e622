package shell

import (
	"context"
	"errors"
	"io"

	"homekeeper/internal/auth"
	"homekeeper/internal/model"
	"homekeeper/internal/report"
	"homekeeper/internal/repository"
	"homekeeper/internal/service"
)

const (
	accountMenu = `
== To-Do List Menu ==
1. Login
2. Register
3. Exit`

	taskMenu = `
== To-Do List Menu ==
1. Add Task
2. Remove Task
3. Mark Task as Completed
4. Display Tasks
5. Save and Exit`
)

// Authenticator registers and logs in to-do users.
type Authenticator interface {
	Register(ctx context.Context, username, password string) (*model.User, error)
	Authenticate(ctx context.Context, username, password string) (*model.User, error)
}

// ToDoListFactory binds a to-do list to a logged-in user.
type ToDoListFactory func(user *model.User) *service.ToDoList

// ToDoShell is the interactive login menu and per-user task menu.
type ToDoShell struct {
	auth    Authenticator
	newList ToDoListFactory
	p       *Prompter
	out     io.Writer
}

func NewToDoShell(a Authenticator, newList ToDoListFactory, p *Prompter, out io.Writer) *ToDoShell {
	return &ToDoShell{auth: a, newList: newList, p: p, out: out}
}

// Run loops over the account menu. Exit, Save and Exit, or the end of input end the session.
func (s *ToDoShell) Run(ctx context.Context) error {
	for {
		s.p.Say("%s", accountMenu)
		choice, err := s.p.Ask("Enter your choice: ")
		if err != nil {
			return endOfInput(err)
		}

		switch choice {
		case "1":
			user, err := s.login(ctx)
			if err != nil {
				return endOfInput(err)
			}
			if user == nil {
				continue
			}
			return endOfInput(s.runTasks(ctx, s.newList(user)))
		case "2":
			if err := s.register(ctx); err != nil {
				return endOfInput(err)
			}
		case "3":
			s.p.Say("Exiting...")
			return nil
		default:
			s.p.Say("Invalid choice. Please try again.")
		}
	}
}

// login returns a nil user when the attempt failed and was reported.
func (s *ToDoShell) login(ctx context.Context) (*model.User, error) {
	username, err := s.p.Ask("Enter username: ")
	if err != nil {
		return nil, err
	}
	password, err := s.p.Ask("Enter password: ")
	if err != nil {
		return nil, err
	}

	user, err := s.auth.Authenticate(ctx, username, password)
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		s.p.Say("Invalid username or password.")
		return nil, nil
	case err != nil:
		s.p.Say("Database error: %v", err)
		return nil, nil
	}
	s.p.Say("Welcome, %s!", user.Username)
	return user, nil
}

func (s *ToDoShell) register(ctx context.Context) error {
	username, err := s.p.Ask("Enter new username: ")
	if err != nil {
		return err
	}
	password, err := s.p.Ask("Enter new password: ")
	if err != nil {
		return err
	}

	_, err = s.auth.Register(ctx, username, password)
	switch {
	case err == nil:
		s.p.Say("User registered successfully.")
	case errors.Is(err, repository.ErrUsernameTaken):
		s.p.Say("Username %q is already taken.", username)
	case errors.Is(err, auth.ErrEmptyUsername):
		s.p.Say("Username cannot be empty.")
	default:
		s.p.Say("Database error: %v", err)
	}
	return nil
}

func (s *ToDoShell) runTasks(ctx context.Context, list *service.ToDoList) error {
	for {
		s.p.Say("%s", taskMenu)
		choice, err := s.p.Ask("Enter your choice: ")
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			err = s.addTask(ctx, list)
		case "2":
			err = s.pickTask(ctx, list, "Enter the index of the task to remove: ", func(id uint) error {
				removed, err := list.RemoveTask(ctx, id)
				if err != nil {
					return err
				}
				if !removed {
					s.p.Say("Task not found.")
					return nil
				}
				s.p.Say("Task removed successfully.")
				return nil
			})
		case "3":
			err = s.pickTask(ctx, list, "Enter the index of the task to mark as completed: ", func(id uint) error {
				done, err := list.MarkTaskCompleted(ctx, id)
				if err != nil {
					return err
				}
				if !done {
					s.p.Say("Task not found.")
					return nil
				}
				s.p.Say("Task marked as completed successfully.")
				return nil
			})
		case "4":
			err = s.displayTasks(ctx, list)
		case "5":
			s.p.Say("Tasks saved successfully. Exiting...")
			return nil
		default:
			s.p.Say("Invalid choice. Please try again.")
		}

		if errors.Is(err, io.EOF) {
			return err
		}
		if err != nil {
			s.p.Say("Error: %v", err)
		}
	}
}

func (s *ToDoShell) addTask(ctx context.Context, list *service.ToDoList) error {
	var input service.TaskInput
	var err error

	if input.Title, err = s.p.Ask("Enter task title: "); err != nil {
		return err
	}
	if input.Description, err = s.p.Ask("Enter task description: "); err != nil {
		return err
	}
	if input.Priority, err = s.p.Ask("Enter task priority (High/Medium/Low): "); err != nil {
		return err
	}
	if input.DueDate, err = s.p.AskOptionalDate("Enter due date (YYYY-MM-DD) or leave empty: "); err != nil {
		return err
	}

	if _, err := list.AddTask(ctx, input); err != nil {
		return err
	}
	s.p.Say("Task added successfully.")
	return nil
}

// pickTask lists titles by display index, resolves the chosen index to a task id and applies fn.
func (s *ToDoShell) pickTask(ctx context.Context, list *service.ToDoList, label string, fn func(id uint) error) error {
	tasks, err := list.GetTasks(ctx)
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		s.p.Say("No tasks yet.")
		return nil
	}
	if err := report.TaskTitles(s.out, tasks); err != nil {
		return err
	}

	index, err := s.p.AskInt(label)
	if err != nil {
		return err
	}
	id, err := list.TaskIDAt(ctx, index)
	if errors.Is(err, service.ErrTaskIndexOutOfRange) {
		s.p.Say("Invalid task index.")
		return nil
	}
	if err != nil {
		return err
	}
	return fn(id)
}

func (s *ToDoShell) displayTasks(ctx context.Context, list *service.ToDoList) error {
	tasks, err := list.GetTasks(ctx)
	if err != nil {
		return err
	}
	return report.TaskList(s.out, tasks)
}
