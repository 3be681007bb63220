package priority

import (
	"errors"
	"fmt"

	"setpriority/internal/logging"
	"setpriority/internal/registry"

	"go.uber.org/zap"
)

// Registry layout under the image execution options root.
const (
	PerfOptionsKey = "PerfOptions"
	PriorityValue  = "CpuPriorityClass"
	ManagedValue   = "SetPriorityManaged"
)

// ErrInvalidClass is returned when asked to store a class that has no code.
var ErrInvalidClass = errors.New("priority class cannot be stored")

// Store gives typed access to per-application priority configuration.
// Writes are not atomic across the two values: a failure part way leaves
// whatever was already written in place.
type Store struct {
	hive registry.Hive
	log  *zap.Logger
}

// NewStore creates a store over the given hive.
func NewStore(hive registry.Hive, log *zap.Logger) *Store {
	return &Store{hive: hive, log: logging.OrNop(log).Named("store")}
}

// Hive returns the underlying hive.
func (s *Store) Hive() registry.Hive {
	return s.hive
}

// PerfOptionsPath returns <app>\PerfOptions.
func PerfOptionsPath(app string) string {
	return registry.Join(app, PerfOptionsKey)
}

// Get returns the stored class (Default when absent) and the managed flag.
// Absence is the default state, not an error.
func (s *Store) Get(app string) (Class, bool) {
	return s.Priority(app), s.IsManaged(app)
}

// Priority returns the stored class, or Default when none is stored.
func (s *Store) Priority(app string) Class {
	v, err := s.hive.GetDWORD(PerfOptionsPath(app), PriorityValue)
	if err != nil {
		if !registry.IsNotExist(err) {
			s.log.Debug("read priority failed", zap.String("app", app), zap.Error(err))
		}
		return Default
	}
	return Class(v)
}

// IsManaged reports whether the managed flag is set to 1.
func (s *Store) IsManaged(app string) bool {
	v, err := s.hive.GetDWORD(PerfOptionsPath(app), ManagedValue)
	return err == nil && v == 1
}

// SetPriority writes the class code and marks the entry managed.
func (s *Store) SetPriority(app string, c Class) error {
	if !c.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidClass, c.Code())
	}
	return s.writeClass(app, c)
}

// RestoreCode writes a code this build has no name for, such as one read
// back from a snapshot. Like SetPriority it marks the entry managed. Zero is
// rejected; clear the value instead.
func (s *Store) RestoreCode(app string, c Class) error {
	if c.IsDefault() {
		return fmt.Errorf("%w: %d", ErrInvalidClass, c.Code())
	}
	return s.writeClass(app, c)
}

func (s *Store) writeClass(app string, c Class) error {
	path := PerfOptionsPath(app)
	if err := s.hive.CreateKey(path); err != nil {
		return s.fail("set priority", app, err)
	}
	if err := s.hive.SetDWORD(path, PriorityValue, c.Code()); err != nil {
		return s.fail("set priority", app, err)
	}
	if err := s.hive.SetDWORD(path, ManagedValue, 1); err != nil {
		return s.fail("set managed", app, err)
	}

	s.log.Info("priority set", zap.String("app", app), zap.Stringer("class", c), zap.Uint32("code", c.Code()))
	return nil
}

// SetManagedOnly creates the path and sets the managed flag without a class.
func (s *Store) SetManagedOnly(app string) error {
	path := PerfOptionsPath(app)
	if err := s.hive.CreateKey(path); err != nil {
		return s.fail("set managed", app, err)
	}
	if err := s.hive.SetDWORD(path, ManagedValue, 1); err != nil {
		return s.fail("set managed", app, err)
	}

	s.log.Info("managed flag set", zap.String("app", app))
	return nil
}

// ClearPriorityValue removes the class value and keeps everything else.
func (s *Store) ClearPriorityValue(app string) error {
	if err := s.hive.DeleteValue(PerfOptionsPath(app), PriorityValue); err != nil && !registry.IsNotExist(err) {
		return s.fail("clear priority", app, err)
	}

	s.log.Info("priority cleared", zap.String("app", app))
	return nil
}

// ClearManagedFlag removes the managed flag and keeps any class value.
func (s *Store) ClearManagedFlag(app string) error {
	if err := s.hive.DeleteValue(PerfOptionsPath(app), ManagedValue); err != nil && !registry.IsNotExist(err) {
		return s.fail("clear managed", app, err)
	}

	s.log.Info("managed flag cleared", zap.String("app", app))
	return nil
}

// RemoveAll deletes the PerfOptions subtree and then the application key.
func (s *Store) RemoveAll(app string) error {
	if err := s.hive.DeleteTree(PerfOptionsPath(app)); err != nil && !registry.IsNotExist(err) {
		return s.fail("remove", app, err)
	}
	if err := s.hive.DeleteKey(app); err != nil {
		return s.fail("remove", app, err)
	}

	s.log.Info("application removed", zap.String("app", app))
	return nil
}

func (s *Store) fail(op, app string, err error) error {
	s.log.Error("store operation failed", zap.String("op", op), zap.String("app", app), zap.Error(err))
	return fmt.Errorf("%s %s: %w", op, app, err)
}
