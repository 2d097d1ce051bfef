// Package profile reads and writes a single user profile kept in a JSON
// file. Every write stamps user.metadata.updatedAt.
package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrLoadProfile wraps any failure to read or parse the profile file.
	ErrLoadProfile = errors.New("failed to load user profile")

	// ErrSaveProfile wraps any failure to encode or write the profile file.
	ErrSaveProfile = errors.New("failed to save user profile")

	// ErrInvalidPatch is returned when an update does not pass validation.
	ErrInvalidPatch = errors.New("invalid profile update")
)

// Profile is the document stored on disk.
type Profile struct {
	User User `json:"user"`
}

// User holds the profile fields.
type User struct {
	Name        string      `json:"name"`
	Email       string      `json:"email,omitempty"`
	Location    string      `json:"location"`
	Timezone    string      `json:"timezone"`
	Preferences Preferences `json:"preferences"`
	Metadata    Metadata    `json:"metadata"`
}

type Preferences struct {
	Language      string `json:"language"`
	Theme         string `json:"theme"`
	Notifications bool   `json:"notifications"`
}

type Metadata struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Patch lists the fields to change in Update. Nil fields are left alone.
type Patch struct {
	Name        *string           `validate:"omitnil,min=1,max=100"`
	Email       *string           `validate:"omitnil,email"`
	Location    *string           `validate:"omitnil,min=1,max=100"`
	Timezone    *string           `validate:"omitnil,min=1"`
	Preferences *PreferencesPatch
}

// PreferencesPatch changes individual preferences.
type PreferencesPatch struct {
	Language      *string `validate:"omitnil,min=2,max=35"`
	Theme         *string `validate:"omitnil,oneof=light dark system"`
	Notifications *bool
}

// Store reads and writes the profile at a fixed path. Writes are
// read-modify-write cycles serialised by a mutex.
type Store struct {
	path     string
	now      func() time.Time
	validate *validator.Validate

	mu sync.Mutex
}

// NewStore returns a store for the profile file at path.
func NewStore(path string) *Store {
	return &Store{
		path:     path,
		now:      time.Now,
		validate: validator.New(),
	}
}

// Load reads and parses the profile file.
func (s *Store) Load() (*Profile, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadProfile, err)
	}

	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadProfile, err)
	}
	return &p, nil
}

// Save writes p as indented JSON, replacing the file.
func (s *Store) Save(p *Profile) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSaveProfile, err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("%w: %w", ErrSaveProfile, err)
	}
	return nil
}

// Location returns the user's current location.
func (s *Store) Location() (string, error) {
	p, err := s.Load()
	if err != nil {
		return "", err
	}
	return p.User.Location, nil
}

// UpdateLocation sets the user's location.
func (s *Store) UpdateLocation(location string) (*Profile, error) {
	return s.Update(Patch{Location: &location})
}

// Update applies patch to the stored profile and saves it.
// The patch is validated before the file is read.
func (s *Store) Update(patch Patch) (*Profile, error) {
	if err := s.validate.Struct(patch); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPatch, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.Load()
	if err != nil {
		return nil, err
	}

	patch.apply(&p.User)
	p.User.Metadata.UpdatedAt = s.now().UTC()

	if err := s.Save(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (patch Patch) apply(u *User) {
	setIf(&u.Name, patch.Name)
	setIf(&u.Email, patch.Email)
	setIf(&u.Location, patch.Location)
	setIf(&u.Timezone, patch.Timezone)

	if pp := patch.Preferences; pp != nil {
		setIf(&u.Preferences.Language, pp.Language)
		setIf(&u.Preferences.Theme, pp.Theme)
		setIf(&u.Preferences.Notifications, pp.Notifications)
	}
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
