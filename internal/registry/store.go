package registry

import (
	"sync"
	"time"
)

type Store struct {
	machineNameToStatus map[string]MachineStatus
	lock                sync.RWMutex
	now                 func() time.Time
}

// Put stamps last_updated and replaces whatever was stored under the status'
// machine name. The caller must have validated the status. The stored copy is
// returned.
func (s *Store) Put(status MachineStatus) MachineStatus {
	stored := status.clone()
	stored[FieldLastUpdated] = epochSeconds(s.now())

	s.lock.Lock()
	defer s.lock.Unlock()

	s.machineNameToStatus[stored.MachineName()] = stored

	return stored.clone()
}

func (s *Store) Get(machineName string) (MachineStatus, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	status, ok := s.machineNameToStatus[machineName]
	if !ok {
		return nil, false
	}
	return status.clone(), true
}

func (s *Store) All() []MachineStatus {
	s.lock.RLock()
	defer s.lock.RUnlock()

	result := make([]MachineStatus, 0, len(s.machineNameToStatus))
	for _, status := range s.machineNameToStatus {
		result = append(result, status.clone())
	}

	return result
}

func (s *Store) Len() int {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return len(s.machineNameToStatus)
}

func epochSeconds(t time.Time) float64 {
	return float64(t.Unix()) + float64(t.Nanosecond())/float64(time.Second)
}

func NewStore() *Store {
	machineNameToStatus := make(map[string]MachineStatus)
	return NewStoreFrom(machineNameToStatus)
}

func NewStoreFrom(machineNameToStatus map[string]MachineStatus) *Store {
	return &Store{
		machineNameToStatus: machineNameToStatus,
		lock:                sync.RWMutex{},
		now:                 time.Now,
	}
}
