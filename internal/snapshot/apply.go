package snapshot

import (
	"fmt"

	"setpriority/internal/priority"
)

// Writer is the subset of the priority store used to restore a snapshot.
type Writer interface {
	SetPriority(app string, c priority.Class) error
	RestoreCode(app string, c priority.Class) error
	SetManagedOnly(app string) error
	ClearPriorityValue(app string) error
	ClearManagedFlag(app string) error
}

// ApplyResult reports what a restore did.
type ApplyResult struct {
	Applied int
	Skipped []string // records with an unreadable priority
}

// Apply brings each application named in s to the recorded state.
// Applications not named in s are left alone. It stops at the first store
// error; records already applied stay applied.
func Apply(store Writer, s *Snapshot) (ApplyResult, error) {
	var result ApplyResult

	for _, r := range s.Entries {
		class, err := r.Class()
		if err != nil || r.Name == "" {
			result.Skipped = append(result.Skipped, r.Name)
			continue
		}

		if err := applyRecord(store, r.Name, class, r.Managed); err != nil {
			return result, fmt.Errorf("restore %s: %w", r.Name, err)
		}
		result.Applied++
	}
	return result, nil
}

func applyRecord(store Writer, app string, class priority.Class, managed bool) error {
	if !class.IsDefault() {
		write := store.SetPriority
		if !class.Valid() {
			write = store.RestoreCode
		}
		if err := write(app, class); err != nil {
			return err
		}
		if !managed {
			return store.ClearManagedFlag(app)
		}
		return nil
	}

	if managed {
		if err := store.SetManagedOnly(app); err != nil {
			return err
		}
		return store.ClearPriorityValue(app)
	}

	if err := store.ClearPriorityValue(app); err != nil {
		return err
	}
	return store.ClearManagedFlag(app)
}
