package review

import (
	"errors"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	domainreview "speakerdesk/internal/domain/review"
)

// Profile carries event-level review tunables kept outside the app config so
// organizers can version them next to their event material.
type Profile struct {
	Version int           `toml:"version"`
	Event   EventConfig   `toml:"event"`
	Review  ReviewConfig  `toml:"review"`
	Exports ExportsConfig `toml:"exports"`
}

type EventConfig struct {
	Name string `toml:"name"`
}

type ReviewConfig struct {
	// InviteCapacity is the number of speaker slots the stage holds; the
	// invited total is reported against it.
	InviteCapacity   int `toml:"invite_capacity"`
	ActivityLogLimit int `toml:"activity_log_limit"`
}

type ExportsConfig struct {
	BaseName string `toml:"base_name"`
}

// DefaultProfile is used when no profile file is given.
func DefaultProfile() Profile {
	return Profile{
		Version: 1,
		Event:   EventConfig{Name: "speakerdesk"},
		Review: ReviewConfig{
			InviteCapacity:   12,
			ActivityLogLimit: domainreview.DefaultActivityLimit,
		},
		Exports: ExportsConfig{BaseName: "speakers"},
	}
}

// LoadProfile reads and validates a review profile TOML file. An empty path
// yields the defaults.
func LoadProfile(profileFile string) (Profile, error) {
	path := strings.TrimSpace(profileFile)
	if path == "" {
		return DefaultProfile(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, err
	}

	var profile Profile
	if err := toml.Unmarshal(raw, &profile); err != nil {
		return Profile{}, err
	}
	if err := validateProfile(profile); err != nil {
		return Profile{}, err
	}
	return applyProfileDefaults(profile), nil
}

func validateProfile(profile Profile) error {
	if profile.Version != 1 {
		return errors.New("unsupported profile version: expected version = 1")
	}
	if profile.Review.InviteCapacity < 0 {
		return errors.New("review.invite_capacity must not be negative")
	}
	if profile.Review.ActivityLogLimit < 0 {
		return errors.New("review.activity_log_limit must not be negative")
	}
	return nil
}

func applyProfileDefaults(profile Profile) Profile {
	defaults := DefaultProfile()

	profile.Event.Name = strings.TrimSpace(profile.Event.Name)
	if profile.Event.Name == "" {
		profile.Event.Name = defaults.Event.Name
	}
	if profile.Review.InviteCapacity == 0 {
		profile.Review.InviteCapacity = defaults.Review.InviteCapacity
	}
	if profile.Review.ActivityLogLimit == 0 {
		profile.Review.ActivityLogLimit = defaults.Review.ActivityLogLimit
	}
	profile.Exports.BaseName = strings.TrimSpace(profile.Exports.BaseName)
	if profile.Exports.BaseName == "" {
		profile.Exports.BaseName = defaults.Exports.BaseName
	}
	return profile
}
