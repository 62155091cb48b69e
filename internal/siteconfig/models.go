package siteconfig

// DocumentID is the key of the singleton config document in store.Site.
const DocumentID = "config"

// SiteConfig is the site appearance. Colors are "H S% L%" strings and are
// not checked. CustomHTML is rendered unescaped by the reader pages: it is
// trusted admin content, and anyone holding the admin secret can run script
// in visitors' browsers through it.
type SiteConfig struct {
	PrimaryColor    string `json:"primaryColor" bson:"primaryColor"`
	AccentColor     string `json:"accentColor" bson:"accentColor"`
	SecondaryColor  string `json:"secondaryColor" bson:"secondaryColor"`
	BackgroundColor string `json:"backgroundColor" bson:"backgroundColor"`
	ForegroundColor string `json:"foregroundColor" bson:"foregroundColor"`
	HeroTitle       string `json:"heroTitle" bson:"heroTitle"`
	HeroSubtitle    string `json:"heroSubtitle" bson:"heroSubtitle"`
	CustomHTML      string `json:"customHTML" bson:"customHTML"`
	UpdatedAt       int64  `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// Defaults returns the configuration served before the first write.
func Defaults() SiteConfig {
	return SiteConfig{
		PrimaryColor:    "270 70% 55%",
		AccentColor:     "300 35% 90%",
		SecondaryColor:  "280 25% 85%",
		BackgroundColor: "240 25% 97%",
		ForegroundColor: "240 20% 15%",
		HeroTitle:       "Histórias Mágicas",
		HeroSubtitle:    "Embarque em uma jornada através de contos encantadores, embalados por músicas suaves e uma atmosfera de noite estrelada.",
		CustomHTML:      "",
	}
}

// Patch is a partial update: nil fields are left untouched. UpdatedAt is
// server-owned and never read from JSON.
type Patch struct {
	PrimaryColor    *string `json:"primaryColor,omitempty" bson:"primaryColor,omitempty"`
	AccentColor     *string `json:"accentColor,omitempty" bson:"accentColor,omitempty"`
	SecondaryColor  *string `json:"secondaryColor,omitempty" bson:"secondaryColor,omitempty"`
	BackgroundColor *string `json:"backgroundColor,omitempty" bson:"backgroundColor,omitempty"`
	ForegroundColor *string `json:"foregroundColor,omitempty" bson:"foregroundColor,omitempty"`
	HeroTitle       *string `json:"heroTitle,omitempty" bson:"heroTitle,omitempty"`
	HeroSubtitle    *string `json:"heroSubtitle,omitempty" bson:"heroSubtitle,omitempty"`
	CustomHTML      *string `json:"customHTML,omitempty" bson:"customHTML,omitempty"`
	UpdatedAt       *int64  `json:"-" bson:"updatedAt,omitempty"`
}

// ApplyTo returns base with every field set in p overwritten.
func (p Patch) ApplyTo(base SiteConfig) SiteConfig {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&base.PrimaryColor, p.PrimaryColor)
	set(&base.AccentColor, p.AccentColor)
	set(&base.SecondaryColor, p.SecondaryColor)
	set(&base.BackgroundColor, p.BackgroundColor)
	set(&base.ForegroundColor, p.ForegroundColor)
	set(&base.HeroTitle, p.HeroTitle)
	set(&base.HeroSubtitle, p.HeroSubtitle)
	set(&base.CustomHTML, p.CustomHTML)
	if p.UpdatedAt != nil {
		base.UpdatedAt = *p.UpdatedAt
	}
	return base
}
