package manager

import (
	"errors"
	"fmt"
	"strings"

	"setpriority/internal/models"
	"setpriority/internal/priority"
)

var (
	ErrEmptyName     = errors.New("name is required")
	ErrDuplicate     = errors.New("app already exists")
	ErrPlatformOwned = errors.New("system app cannot be deleted")
)

// FormInput contains data entered by the operator in the Add flow.
type FormInput struct {
	Name     string
	Priority priority.Class
}

// Validate normalizes the name and checks it against the rows currently
// shown. Hidden entries are not considered.
func Validate(in FormInput, visible []models.Entry) (FormInput, error) {
	name := NormalizeName(in.Name)
	if name == "" {
		return FormInput{}, ErrEmptyName
	}

	if i := models.IndexOf(visible, name); i >= 0 {
		return FormInput{}, fmt.Errorf("%w: %q", ErrDuplicate, visible[i].Name)
	}

	if !in.Priority.IsDefault() && !in.Priority.Valid() {
		return FormInput{}, fmt.Errorf("invalid priority %d", in.Priority.Code())
	}

	return FormInput{Name: name, Priority: in.Priority}, nil
}

// NormalizeName trims input and reduces a path to its file name. Both
// separators are accepted since pasted paths may use either.
func NormalizeName(input string) string {
	name := strings.TrimSpace(input)
	name = strings.Trim(name, `"`)
	if i := strings.LastIndexAny(name, `\/`); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSpace(name)
}
