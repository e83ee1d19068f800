package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/ini.v1"
)

const inputKeyPrefix = "input."

// Profile is a named report run: which report, where its inputs are and
// where the workbook goes.
//
//	[nfc-weekly]
//	report            = nfc
//	input.referential = /data/ref.csv
//	input.weekly      = /data/weekly.csv
//	output            = /data/out/nfc.xlsx
type Profile struct {
	Name   string
	Report string
	Inputs map[string]string
	Output string
}

type Profiles interface {
	GetProfiles(ctx context.Context) ([]string, error)
	GetProfile(ctx context.Context, name string) (*Profile, error)
}

type iniProfiles struct {
	cfg *ini.File
	dir string
}

// DefaultProfilesPath is $HOME/.sales-reports.ini.
func DefaultProfilesPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".sales-reports.ini"
	}
	return filepath.Join(home, ".sales-reports.ini")
}

// NewProfiles loads the profiles file at path. Relative input and output
// paths in the file are resolved against its directory.
func NewProfiles(path string) (Profiles, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load profiles: %w", err)
	}
	return &iniProfiles{cfg: cfg, dir: filepath.Dir(path)}, nil
}

func (p *iniProfiles) GetProfiles(_ context.Context) ([]string, error) {
	var names []string
	for _, section := range p.cfg.Sections() {
		if len(section.Keys()) > 0 && section.Name() != ini.DefaultSection {
			names = append(names, section.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func (p *iniProfiles) GetProfile(_ context.Context, name string) (*Profile, error) {
	section, err := p.cfg.GetSection(name)
	if err != nil {
		return nil, fmt.Errorf("profile %s not found", name)
	}

	report := section.Key("report").String()
	if report == "" {
		return nil, fmt.Errorf("profile %s: report is not set", name)
	}

	profile := &Profile{
		Name:   name,
		Report: report,
		Inputs: make(map[string]string),
	}
	for _, key := range section.Keys() {
		if slot, ok := strings.CutPrefix(key.Name(), inputKeyPrefix); ok && slot != "" {
			profile.Inputs[slot] = p.resolve(key.String())
		}
	}
	if out := section.Key("output").String(); out != "" {
		profile.Output = p.resolve(out)
	}
	return profile, nil
}

func (p *iniProfiles) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(p.dir, path)
}
