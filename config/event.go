package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

//go:embed event.yaml
var defaultEventFile []byte

// Venue is where the wedding takes place.
type Venue struct {
	Name    string `mapstructure:"name"`
	Address string `mapstructure:"address"`
	MapURL  string `mapstructure:"map_url"`
}

// ItineraryItem is one entry of the day's schedule.
type ItineraryItem struct {
	Time string `mapstructure:"time"`
	Item string `mapstructure:"item"`
}

// EventNotes are free-form guest notes.
type EventNotes struct {
	Parking string `mapstructure:"parking"`
	Kids    string `mapstructure:"kids"`
}

// PhotoPolicy bounds guest photo uploads.
type PhotoPolicy struct {
	MaxFileSizeMB int      `mapstructure:"max_file_size_mb"`
	MaxFiles      int      `mapstructure:"max_files"`
	AllowedTypes  []string `mapstructure:"allowed_types"`
}

// EventConfig is the immutable description of the wedding. It is loaded once
// at startup and passed by value to every component that renders it.
type EventConfig struct {
	CoupleNames  string          `mapstructure:"couple_names"`
	Date         string          `mapstructure:"date"`
	DateISO      string          `mapstructure:"date_iso"`
	StartTime    string          `mapstructure:"start_time"`
	EndTime      string          `mapstructure:"end_time"`
	StartTime24  string          `mapstructure:"start_time_24"`
	EndTime24    string          `mapstructure:"end_time_24"`
	Timezone     string          `mapstructure:"timezone"`
	Venue        Venue           `mapstructure:"venue"`
	DressCode    string          `mapstructure:"dress_code"`
	Itinerary    []ItineraryItem `mapstructure:"itinerary"`
	Notes        EventNotes      `mapstructure:"notes"`
	RSVPDeadline string          `mapstructure:"rsvp_deadline"`
	Photo        PhotoPolicy     `mapstructure:"photo"`
}

// EmailCopy holds the fixed sentences used by notification emails.
type EmailCopy struct {
	Subject         string `mapstructure:"subject"`
	Intro           string `mapstructure:"intro"`
	Closing         string `mapstructure:"closing"`
	Parking         string `mapstructure:"parking"`
	ReminderSubject string `mapstructure:"reminder_subject"`
	ReminderIntro   string `mapstructure:"reminder_intro"`
	ReminderClosing string `mapstructure:"reminder_closing"`
}

type eventFile struct {
	Event EventConfig `mapstructure:"event"`
	Email EmailCopy   `mapstructure:"email"`
}

// LoadEvent reads the event description from path (yaml, json or toml,
// chosen by extension). An empty path uses the embedded default.
func LoadEvent(path string) (EventConfig, EmailCopy, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return EventConfig{}, EmailCopy{}, fmt.Errorf("read event config %s: %w", path, err)
		}
	} else {
		v.SetConfigType("yaml")
		if err := v.ReadConfig(bytes.NewReader(defaultEventFile)); err != nil {
			return EventConfig{}, EmailCopy{}, fmt.Errorf("read embedded event config: %w", err)
		}
	}

	var f eventFile
	if err := v.Unmarshal(&f); err != nil {
		return EventConfig{}, EmailCopy{}, fmt.Errorf("decode event config: %w", err)
	}
	f.Email.applyDefaults(f.Event)
	if err := f.Event.Validate(); err != nil {
		return EventConfig{}, EmailCopy{}, err
	}
	return f.Event, f.Email, nil
}

func (c *EmailCopy) applyDefaults(ev EventConfig) {
	if c.Subject == "" {
		c.Subject = "You're invited to " + ev.CoupleNames
	}
	if c.ReminderSubject == "" {
		c.ReminderSubject = "Reminder: " + ev.CoupleNames + " in 3 days"
	}
	if c.Parking == "" {
		c.Parking = ev.Notes.Parking
	}
}

// Validate reports every required field that is empty.
func (e EventConfig) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"couple_names", e.CoupleNames},
		{"date", e.Date},
		{"date_iso", e.DateISO},
		{"start_time", e.StartTime},
		{"end_time", e.EndTime},
		{"start_time_24", e.StartTime24},
		{"end_time_24", e.EndTime24},
		{"timezone", e.Timezone},
		{"venue.name", e.Venue.Name},
		{"venue.address", e.Venue.Address},
		{"venue.map_url", e.Venue.MapURL},
		{"dress_code", e.DressCode},
	}
	var missing []string
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, r.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("event config missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}
