package badger

import (
	"github.com/ternarybob/arbor"

	"github.com/saunagids/saunagids/internal/common"
	"github.com/saunagids/saunagids/internal/interfaces"
)

// Manager implements the StorageManager interface for Badger
type Manager struct {
	db       *BadgerDB
	venue    interfaces.VenueStorage
	review   interfaces.ReviewStorage
	settings interfaces.SettingsStorage
	logger   arbor.ILogger
}

// NewManager creates a new Badger storage manager
func NewManager(logger arbor.ILogger, config *common.BadgerConfig) (interfaces.StorageManager, error) {
	db, err := NewBadgerDB(logger, config)
	if err != nil {
		return nil, err
	}

	manager := &Manager{
		db:       db,
		venue:    NewVenueStorage(db, logger),
		review:   NewReviewStorage(db, logger),
		settings: NewSettingsStorage(db, logger),
		logger:   logger,
	}

	logger.Info().Msg("Badger storage manager initialized")

	return manager, nil
}

// VenueStorage returns the venue storage interface
func (m *Manager) VenueStorage() interfaces.VenueStorage {
	return m.venue
}

// ReviewStorage returns the review storage interface
func (m *Manager) ReviewStorage() interfaces.ReviewStorage {
	return m.review
}

// SettingsStorage returns the settings storage interface
func (m *Manager) SettingsStorage() interfaces.SettingsStorage {
	return m.settings
}

// Close closes the database connection
func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}
