package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// VersionNumber 版本编号
type VersionNumber struct {
	Major int `json:"major"`
	Minor int `json:"minor"`
	Micro int `json:"micro"`
}

var versionPattern = regexp.MustCompile(`(\d+)\.(\d+)\.(\d+)`)

/**
 * Parse version string into VersionNumber struct
 * @param {string} versionStr - Version string in "major.minor.micro" format (e.g. "1.2.3")
 * @returns {*VersionNumber} Pointer to VersionNumber struct if parse succeeds, nil on failure
 * @description
 * - Splits version string by dots and converts to integers
 * - A leading "v" is accepted
 * - Returns nil if input format is invalid or contains non-numeric parts
 * @example
 * ver := ParseVersionNumber("1.2.3")  // returns VersionNumber{Major:1, Minor:2, Micro:3}
 * ver := ParseVersionNumber("invalid") // returns nil
 */
func ParseVersionNumber(versionStr string) *VersionNumber {
	vers := strings.Split(strings.TrimPrefix(strings.TrimSpace(versionStr), "v"), ".")
	if len(vers) != 3 {
		return nil
	}

	var ver VersionNumber
	var err error
	ver.Major, err = strconv.Atoi(vers[0])
	if err != nil {
		return nil
	}
	ver.Minor, err = strconv.Atoi(vers[1])
	if err != nil {
		return nil
	}
	ver.Micro, err = strconv.Atoi(vers[2])
	if err != nil {
		return nil
	}
	return &ver
}

/**
 * Find the first version number inside free text
 * @param {string} text - Tool output such as "Docker version 27.3.1, build ce12230"
 * @returns {*VersionNumber} First x.y.z found, nil when there is none
 */
func ExtractVersionNumber(text string) *VersionNumber {
	m := versionPattern.FindString(text)
	if m == "" {
		return nil
	}
	return ParseVersionNumber(m)
}

// String 打印版本号
func (v VersionNumber) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Micro)
}

// CompareVersion 比较版本, <0 when local is older than remote
func CompareVersion(local, remote VersionNumber) int {
	if local.Major != remote.Major {
		return local.Major - remote.Major
	}
	if local.Minor != remote.Minor {
		return local.Minor - remote.Minor
	}
	return local.Micro - remote.Micro
}
