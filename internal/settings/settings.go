package settings

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Hours struct {
	Open  string `json:"open" yaml:"open" validate:"required,datetime=15:04"`
	Close string `json:"close" yaml:"close" validate:"required,datetime=15:04"`
}

type OperatingHours struct {
	Weekdays Hours `json:"weekdays" yaml:"weekdays"`
	Weekends Hours `json:"weekends" yaml:"weekends"`
}

// Business is the shop's public contact card.
type Business struct {
	Name           string         `json:"name" yaml:"name" validate:"required"`
	OwnerName      string         `json:"ownerName" yaml:"ownerName"`
	Address        string         `json:"address" yaml:"address" validate:"required"`
	Phone          string         `json:"phone" yaml:"phone" validate:"required"`
	Email          string         `json:"email" yaml:"email" validate:"omitempty,email"`
	WhatsApp       string         `json:"whatsapp" yaml:"whatsapp"`
	OperatingHours OperatingHours `json:"operatingHours" yaml:"operatingHours"`
}

func Defaults() Business {
	return Business{
		Name:      "Soko Mtaani",
		OwnerName: "Brian Owino",
		Address:   "Parklands Road, Nairobi",
		Phone:     "+254712345678",
		Email:     "info@sokomtaani.co.ke",
		WhatsApp:  "+254712345678",
		OperatingHours: OperatingHours{
			Weekdays: Hours{Open: "07:00", Close: "20:00"},
			Weekends: Hours{Open: "08:00", Close: "18:00"},
		},
	}
}

// LoadFile overlays the YAML file at path on top of the defaults. Keys
// missing from the file keep their default value.
func LoadFile(path string) (Business, error) {
	b := Defaults()
	if path == "" {
		return b, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Business{}, fmt.Errorf("read settings file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &b); err != nil {
		return Business{}, fmt.Errorf("parse settings file %s: %w", path, err)
	}
	return b, nil
}

// WhatsAppLink returns the wa.me chat link for the WhatsApp number.
func (b Business) WhatsAppLink() string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, b.WhatsApp)
	if digits == "" {
		return ""
	}
	return "https://wa.me/" + digits
}

// Patch is a partial update. Nil fields are left unchanged.
type Patch struct {
	Name           *string         `json:"name,omitempty"`
	OwnerName      *string         `json:"ownerName,omitempty"`
	Address        *string         `json:"address,omitempty"`
	Phone          *string         `json:"phone,omitempty"`
	Email          *string         `json:"email,omitempty"`
	WhatsApp       *string         `json:"whatsapp,omitempty"`
	OperatingHours *OperatingHours `json:"operatingHours,omitempty"`
}

func (b Business) Apply(p Patch) Business {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	set(&b.Name, p.Name)
	set(&b.OwnerName, p.OwnerName)
	set(&b.Address, p.Address)
	set(&b.Phone, p.Phone)
	set(&b.Email, p.Email)
	set(&b.WhatsApp, p.WhatsApp)
	if p.OperatingHours != nil {
		b.OperatingHours = *p.OperatingHours
	}
	return b
}
