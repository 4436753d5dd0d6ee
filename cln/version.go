package cln

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/mod/semver"
)

// MinResolvedTimeVersion is the first CLN version reporting resolved_time on
// forwards. Older nodes will always report zero fee sums.
const MinResolvedTimeVersion = "v0.7.1"

// ParseVersion converts a CLN version string, e.g. `v23.05.2`,
// `0.7.1rc1` or `v0.10.2-12-gabcdef-modded`, to a canonical semver string.
func ParseVersion(version string) (string, error) {
	v := strings.TrimPrefix(strings.TrimSpace(version), "v")
	release, prerelease, hasPrerelease := strings.Cut(v, "-")
	if hasPrerelease && prerelease == "" {
		return "", fmt.Errorf("invalid version '%s'", version)
	}

	fields := strings.Split(release, ".")
	if len(fields) > 3 {
		return "", fmt.Errorf("invalid version '%s'", version)
	}

	// A suffix on the last component, like the rc in 0.7.1rc1, is a
	// prerelease.
	last := fields[len(fields)-1]
	digits := len(last) - len(strings.TrimLeft(last, "0123456789"))
	if digits > 0 && digits < len(last) {
		fields[len(fields)-1] = last[:digits]
		if prerelease == "" {
			prerelease = last[digits:]
		} else {
			prerelease = last[digits:] + "-" + prerelease
		}
	}

	for len(fields) < 3 {
		fields = append(fields, "0")
	}

	for i, field := range fields {
		n, err := strconv.ParseUint(field, 10, 64)
		if err != nil {
			return "", fmt.Errorf("invalid version '%s'", version)
		}
		// semver doesn't allow leading zeros, CLN uses them for months.
		fields[i] = strconv.FormatUint(n, 10)
	}

	result := "v" + strings.Join(fields, ".")
	if prerelease != "" {
		result += "-" + prerelease
	}
	if !semver.IsValid(result) {
		return "", fmt.Errorf("invalid version '%s'", version)
	}

	return result, nil
}

// SupportsResolvedTime reports whether a node running version reports
// resolved_time on its forwards. Only the release part of the version is
// compared, so release candidates and git builds of v0.7.1 qualify.
func SupportsResolvedTime(version string) (bool, error) {
	v, err := ParseVersion(version)
	if err != nil {
		return false, err
	}

	release := strings.TrimSuffix(v, semver.Prerelease(v))
	return semver.Compare(release, MinResolvedTimeVersion) >= 0, nil
}

// CheckVersion logs a warning if the node version is too old for the fee
// sums to work. This is not fatal, the fee policies are still reported.
func CheckVersion(log *zap.Logger, version string) {
	ok, err := SupportsResolvedTime(version)
	if err != nil {
		log.Warn("could not parse node version, some feereport "+
			"functionality might not work!", zap.String("version", version),
			zap.Error(err))
		return
	}

	if !ok {
		log.Warn(fmt.Sprintf("c-lightning %s or later is required, "+
			"some feereport functionality might not work!",
			MinResolvedTimeVersion), zap.String("version", version))
	}
}
