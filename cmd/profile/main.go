// Command profile shows and edits the user profile file.
//
//	profile                         show the profile
//	profile -location "Austin, TX"  change the location
//	profile -theme dark -notifications=false
//	profile -init -name "Jane"      create a fresh profile
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/utkarsh5026/asynckit/internal/cli"
	"github.com/utkarsh5026/asynckit/profile"
)

func main() {
	configFile := flag.String("config", "", "Path to a config file")
	file := flag.String("file", "", "Profile file (overrides profile.path)")
	initProfile := flag.Bool("init", false, "Create a new profile file, replacing any existing one")
	asJSON := flag.Bool("json", false, "Print the raw profile document")

	name := flag.String("name", "", "Set the user name")
	email := flag.String("email", "", "Set the email address")
	location := flag.String("location", "", "Set the location")
	timezone := flag.String("timezone", "", "Set the IANA timezone")
	language := flag.String("language", "", "Set the preferred language")
	theme := flag.String("theme", "", "Set the theme (light, dark or system)")
	notifications := flag.Bool("notifications", true, "Enable notifications")
	flag.Parse()

	cfg, _, err := cli.Bootstrap(*configFile)
	if err != nil {
		cli.Fail(err)
	}

	path := cfg.Profile.Path
	if *file != "" {
		path = *file
	}
	store := profile.NewStore(path)

	if *initProfile {
		if err := create(store, *name); err != nil {
			cli.Fail(err)
		}
	}

	var patch profile.Patch
	var prefs profile.PreferencesPatch
	changed := false
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			if !*initProfile {
				patch.Name, changed = name, true
			}
		case "email":
			patch.Email, changed = email, true
		case "location":
			patch.Location, changed = location, true
		case "timezone":
			patch.Timezone, changed = timezone, true
		case "language":
			prefs.Language, changed = language, true
		case "theme":
			prefs.Theme, changed = theme, true
		case "notifications":
			prefs.Notifications, changed = notifications, true
		}
	})
	if prefs != (profile.PreferencesPatch{}) {
		patch.Preferences = &prefs
	}

	if changed {
		if _, err := store.Update(patch); err != nil {
			cli.Fail(err)
		}
		cli.ColorPrintLn(cli.Green, "✓ Profile updated")
	}

	p, err := store.Load()
	if err != nil {
		cli.Fail(err)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(p); err != nil {
			cli.Fail(err)
		}
		return
	}

	show(p)
}

func create(store *profile.Store, name string) error {
	now := time.Now().UTC()
	p := &profile.Profile{User: profile.User{
		Name:     name,
		Timezone: "UTC",
		Preferences: profile.Preferences{
			Language:      "en",
			Theme:         "system",
			Notifications: true,
		},
		Metadata: profile.Metadata{CreatedAt: now, UpdatedAt: now},
	}}
	if err := store.Save(p); err != nil {
		return err
	}

	cli.ColorPrintLn(cli.Green, "✓ Profile created")
	return nil
}

func show(p *profile.Profile) {
	u := p.User

	fmt.Println(strings.Repeat("=", 50))
	cli.ColorPrintLn(cli.Bold, "User Profile")
	fmt.Println(strings.Repeat("=", 50))

	fmt.Printf("Name: %s\n", u.Name)
	if u.Email != "" {
		fmt.Printf("Email: %s\n", u.Email)
	}
	fmt.Printf("Location: %s\n", u.Location)
	fmt.Printf("Timezone: %s\n", u.Timezone)
	fmt.Printf("Language: %s\n", u.Preferences.Language)
	fmt.Printf("Theme: %s\n", u.Preferences.Theme)
	fmt.Printf("Notifications: %t\n", u.Preferences.Notifications)
	fmt.Printf("Last Updated: %s\n", u.Metadata.UpdatedAt.Format(time.RFC3339))
	fmt.Println(strings.Repeat("=", 50))
}
