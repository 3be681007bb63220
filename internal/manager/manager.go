package manager

import (
	"fmt"

	"setpriority/internal/logging"
	"setpriority/internal/models"
	"setpriority/internal/priority"
	"setpriority/internal/snapshot"

	"go.uber.org/zap"
)

// Store is the part of priority.Store the manager mutates.
type Store interface {
	Get(app string) (priority.Class, bool)
	SetPriority(app string, c priority.Class) error
	SetManagedOnly(app string) error
	ClearPriorityValue(app string) error
	ClearManagedFlag(app string) error
	RemoveAll(app string) error
}

// Classifier decides whether an application belongs to the platform.
type Classifier interface {
	Classify(app string) models.Origin
}

// Archiver keeps a copy of an entry before it is removed.
type Archiver interface {
	Save(s *snapshot.Snapshot, label string) (string, error)
}

// Manager runs the operator's add, edit and delete actions against the store.
type Manager struct {
	store    Store
	classify Classifier
	archive  Archiver
	log      *zap.Logger
}

// New creates a manager. archive may be nil, in which case removals are
// not snapshotted.
func New(store Store, classify Classifier, archive Archiver, log *zap.Logger) *Manager {
	return &Manager{
		store:    store,
		classify: classify,
		archive:  archive,
		log:      logging.OrNop(log).Named("manager"),
	}
}

// Add validates in and registers the application as managed, then stores
// the priority when one was chosen. It returns the normalized name.
func (m *Manager) Add(in FormInput, visible []models.Entry) (string, error) {
	in, err := Validate(in, visible)
	if err != nil {
		return "", err
	}

	if err := m.store.SetManagedOnly(in.Name); err != nil {
		return "", err
	}
	if !in.Priority.IsDefault() {
		if err := m.store.SetPriority(in.Name, in.Priority); err != nil {
			return "", err
		}
	}

	m.log.Info("app added", zap.String("app", in.Name), zap.Stringer("class", in.Priority))
	return in.Name, nil
}

// Edit changes the stored priority. Default clears the value and leaves
// the managed flag alone.
func (m *Manager) Edit(name string, c priority.Class) error {
	if c.IsDefault() {
		return m.store.ClearPriorityValue(name)
	}
	return m.store.SetPriority(name, c)
}

// Unmanage drops the managed flag. The stored priority stays in effect.
func (m *Manager) Unmanage(name string) error {
	return m.store.ClearManagedFlag(name)
}

// CheckRemovable refuses platform-owned applications.
func (m *Manager) CheckRemovable(name string) error {
	if m.classify.Classify(name) == models.PlatformOwned {
		return fmt.Errorf("%w: %s", ErrPlatformOwned, name)
	}
	return nil
}

// Remove deletes the application key after saving a snapshot of its state.
// It returns the snapshot path, empty when no archive is configured.
func (m *Manager) Remove(name string) (string, error) {
	if err := m.CheckRemovable(name); err != nil {
		return "", err
	}

	var saved string
	if m.archive != nil {
		class, managed := m.store.Get(name)
		entry := models.Entry{Name: name, Managed: managed, Priority: class}
		s := snapshot.Capture([]models.Entry{entry}, "before deleting "+name)

		path, err := m.archive.Save(s, "pre-delete "+name)
		if err != nil {
			return "", fmt.Errorf("snapshot before delete: %w", err)
		}
		saved = path
	}

	if err := m.store.RemoveAll(name); err != nil {
		return saved, err
	}

	m.log.Info("app deleted", zap.String("app", name), zap.String("snapshot", saved))
	return saved, nil
}
