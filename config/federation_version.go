package config

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

// FederationVersion is either the latest release of a federation major
// version or an exact release, written as "1", "2" or "=2.3.2".
type FederationVersion struct {
	major uint64
	exact *semver.Version
}

var (
	LatestFedOne = FederationVersion{major: 1}
	LatestFedTwo = FederationVersion{major: 2}
)

// ParseFederationVersion parses the federation_version value of a supergraph config
func ParseFederationVersion(s string) (FederationVersion, error) {
	s = strings.TrimSpace(s)

	if exact, ok := strings.CutPrefix(s, "="); ok {
		v, err := semver.StrictNewVersion(exact)
		if err != nil {
			return FederationVersion{}, fmt.Errorf("invalid federation version %q: %w", s, err)
		}
		if v.Major() != 1 && v.Major() != 2 {
			return FederationVersion{}, fmt.Errorf("unsupported federation version %q, only 1.x and 2.x exist", s)
		}
		return FederationVersion{major: v.Major(), exact: v}, nil
	}

	switch strings.TrimPrefix(s, "v") {
	case "1":
		return LatestFedOne, nil
	case "2":
		return LatestFedTwo, nil
	}

	return FederationVersion{}, fmt.Errorf(
		"invalid federation version %q, expected 1, 2 or an exact version such as =2.3.2", s,
	)
}

// IsFedTwo reports whether the version belongs to federation 2
func (v FederationVersion) IsFedTwo() bool {
	return v.major == 2
}

// Exact returns the pinned release, or nil for "latest of major"
func (v FederationVersion) Exact() *semver.Version {
	return v.exact
}

func (v FederationVersion) Equal(other FederationVersion) bool {
	if v.exact == nil || other.exact == nil {
		return v.major == other.major && v.exact == nil && other.exact == nil
	}
	return v.exact.Equal(other.exact)
}

func (v FederationVersion) String() string {
	if v.exact != nil {
		return "=" + v.exact.String()
	}
	return strconv.FormatUint(v.major, 10)
}

func (v *FederationVersion) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: federation_version must be a scalar", value.Line)
	}

	parsed, err := ParseFederationVersion(value.Value)
	if err != nil {
		return err
	}

	*v = parsed
	return nil
}

func (v FederationVersion) MarshalYAML() (interface{}, error) {
	return v.String(), nil
}

func (v FederationVersion) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}
