package core

import (
	"fmt"

	"fleetops.com/fleetops/core/models"
	"fleetops.com/fleetops/utils"
	"gorm.io/gorm"
)

// Roster is a snapshot of the drivers taken at the start of a batch.
// Names are matched after utils.NormalizeName; a name shared by two drivers
// resolves to nobody.
type Roster struct {
	byID      map[string]models.Driver
	byName    map[string]string
	ambiguous map[string]bool
}

func NewRoster(drivers []models.Driver) *Roster {
	r := &Roster{
		byID:      make(map[string]models.Driver, len(drivers)),
		byName:    make(map[string]string, len(drivers)),
		ambiguous: map[string]bool{},
	}
	for _, d := range drivers {
		r.byID[d.ID] = d
		key := utils.NormalizeName(d.FullName)
		if key == "" {
			continue
		}
		if existing, ok := r.byName[key]; ok && existing != d.ID {
			r.ambiguous[key] = true
			continue
		}
		r.byName[key] = d.ID
	}
	return r
}

// LoadRoster reads every driver regardless of employment status, so
// historical sheets still resolve.
func LoadRoster(db *gorm.DB) (*Roster, error) {
	drivers, err := models.ListDrivers(db, false)
	if err != nil {
		return nil, storageError("load driver roster", err)
	}
	return NewRoster(drivers), nil
}

// Resolve maps a free-text name to a driver id.
func (r *Roster) Resolve(name string) (string, error) {
	key := utils.NormalizeName(name)
	if key == "" || r.ambiguous[key] {
		return "", fmt.Errorf("%w: %q", ErrDriverNotFound, name)
	}
	id, ok := r.byName[key]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrDriverNotFound, name)
	}
	return id, nil
}

func (r *Roster) Driver(id string) (models.Driver, bool) {
	d, ok := r.byID[id]
	return d, ok
}

func (r *Roster) Len() int {
	return len(r.byID)
}
