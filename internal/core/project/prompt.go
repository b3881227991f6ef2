package project

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Asker is the input port for interactive flows. Ask shows question and
// returns the raw answer.
type Asker interface {
	Ask(question string) (string, error)
}

// Chooser is an optional upgrade for Askers that can present a list
// directly. Choose returns the zero-based index of the picked option.
type Chooser interface {
	Choose(title string, options []string) (int, error)
}

// Notifier is an optional upgrade for Askers that can show feedback between
// questions, such as why an answer was rejected.
type Notifier interface {
	Notify(message string)
}

func notify(a Asker, format string, args ...any) {
	if n, ok := a.(Notifier); ok {
		n.Notify(fmt.Sprintf(format, args...))
	}
}

// Action is a main menu choice.
type Action int

// Main menu actions.
const (
	ActionContinue Action = iota + 1
	ActionSelect
	ActionCreate
)

// String implements fmt.Stringer.
func (a Action) String() string {
	switch a {
	case ActionContinue:
		return "continue"
	case ActionSelect:
		return "select"
	case ActionCreate:
		return "create"
	default:
		return "unknown"
	}
}

// ChooseAction asks what to do before a run. With an active project the menu
// offers continue, select and create, and any answer other than 2 or 3
// continues. Without one it offers select and create, and any answer other
// than 2 selects.
func ChooseAction(a Asker, active string) (Action, error) {
	if active != "" {
		options := []string{
			"Continue with " + active,
			"Select another project",
			"Create a new project",
		}
		if c, ok := a.(Chooser); ok {
			i, err := c.Choose("Active project: "+active, options)
			if err != nil {
				return 0, err
			}
			return Action(i + 1), nil
		}
		answer, err := a.Ask(menu("Active project: "+active, options) + "Choose (1-3, default 1): ")
		if err != nil {
			return 0, err
		}
		switch strings.TrimSpace(answer) {
		case "2":
			return ActionSelect, nil
		case "3":
			return ActionCreate, nil
		default:
			return ActionContinue, nil
		}
	}

	options := []string{"Select an existing project", "Create a new project"}
	if c, ok := a.(Chooser); ok {
		i, err := c.Choose("No active project", options)
		if err != nil {
			return 0, err
		}
		return Action(i + 2), nil
	}
	answer, err := a.Ask(menu("No active project", options) + "Choose (1-2): ")
	if err != nil {
		return 0, err
	}
	if strings.TrimSpace(answer) == "2" {
		return ActionCreate, nil
	}
	return ActionSelect, nil
}

// ChooseProject asks the user to pick one of names by number and repeats
// the question until the answer is an integer in range.
func ChooseProject(a Asker, names []string) (string, error) {
	if len(names) == 0 {
		return "", ErrNoProjects
	}
	if c, ok := a.(Chooser); ok {
		i, err := c.Choose("Select a project", names)
		if err != nil {
			return "", err
		}
		if i < 0 || i >= len(names) {
			return "", fmt.Errorf("choice %d out of range", i)
		}
		return names[i], nil
	}

	question := menu("Available projects", names) + fmt.Sprintf("Select a project (1-%d): ", len(names))
	for {
		answer, err := a.Ask(question)
		if err != nil {
			return "", err
		}
		n, convErr := strconv.Atoi(strings.TrimSpace(answer))
		if convErr == nil && n >= 1 && n <= len(names) {
			return names[n-1], nil
		}
		notify(a, "Invalid choice, enter a number between 1 and %d.", len(names))
		question = fmt.Sprintf("Select a project (1-%d): ", len(names))
	}
}

// NewProjectAnswers holds the answers collected for a new project.
type NewProjectAnswers struct {
	Name     string
	BundleID string
	Color    string // six hex digits without #
}

// AskNewProject collects a project name, bundle id and colour, repeating each
// question until the answer is valid, then asks for confirmation. exists
// reports whether a project name is already taken. A "n" confirmation
// returns ErrCancelled.
func AskNewProject(a Asker, exists func(string) bool) (*NewProjectAnswers, error) {
	answers := &NewProjectAnswers{}

	for {
		name, err := a.Ask("Project name (letters, digits, _ and -): ")
		if err != nil {
			return nil, err
		}
		name = strings.TrimSpace(name)
		if err := ValidateName(name); err != nil {
			notify(a, "%v", ErrInvalidName)
			continue
		}
		if exists != nil && exists(name) {
			notify(a, "Project %q already exists.", name)
			continue
		}
		answers.Name = name
		break
	}

	for {
		id, err := a.Ask("Bundle ID (e.g. com.company.app): ")
		if err != nil {
			return nil, err
		}
		if err := ValidateBundleID(id); err != nil {
			notify(a, "%v", ErrInvalidBundleID)
			continue
		}
		answers.BundleID = strings.TrimSpace(id)
		break
	}

	for {
		color, err := a.Ask(fmt.Sprintf("Primary colour (hex, default %s): ", DefaultColor))
		if err != nil {
			return nil, err
		}
		clean, err := NormalizeColor(color)
		if err != nil {
			notify(a, "%v", ErrInvalidColor)
			continue
		}
		answers.Color = clean
		break
	}

	rgb, _ := HexToRGB(answers.Color)
	ok, err := Confirm(a, fmt.Sprintf("Create %s (%s, #%s %s)?", answers.Name, answers.BundleID, answers.Color, rgb))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrCancelled
	}
	return answers, nil
}

// Confirm asks a yes/no question that defaults to yes. Only n or no, in
// any case, declines.
func Confirm(a Asker, question string) (bool, error) {
	answer, err := a.Ask(question + " (Y/n): ")
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer != "n" && answer != "no", nil
}

// IsCancelled reports whether err means the user backed out.
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}

func menu(title string, options []string) string {
	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n")
	for i, opt := range options {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, opt)
	}
	return b.String()
}
