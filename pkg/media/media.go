// Package media discovers mounted removable volumes (SD cards) by querying
// lsblk. Discovery is best-effort: a failed query yields no candidates, not
// an error, since the operator can always pass the mount path explicitly.
package media

import (
	"bytes"
	"context"
	"encoding/json"
	"os/exec"
	"sort"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔍 DetectMounts returns the mount points of removable block devices,
// sorted. An lsblk failure is logged and returns an empty list.
func DetectMounts(ctx context.Context) []string {
	logger := zerolog.Ctx(ctx)

	cmd := exec.CommandContext(ctx, "lsblk", "-J", "-o", "NAME,RM,MOUNTPOINT,MOUNTPOINTS,TYPE,TRAN")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		logger.Warn().Err(err).Str("stderr", stderr.String()).Msg("lsblk failed to enumerate removable devices")
		return nil
	}

	mounts, err := parseMounts(stdout.Bytes())
	if err != nil {
		logger.Warn().Err(err).Msg("could not parse lsblk output")
		return nil
	}
	return mounts
}

// lsblk emits rm as a bool on modern versions and as "0"/"1" strings on
// older ones; accept both.
type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case "true", `"1"`, "1":
		*b = true
	case "false", `"0"`, "0", "null":
		*b = false
	default:
		return errors.Errorf("unexpected boolean value: %s", data)
	}
	return nil
}

type blockDevice struct {
	Name        string        `json:"name"`
	RM          flexBool      `json:"rm"`
	Mountpoint  *string       `json:"mountpoint"`
	Mountpoints []*string     `json:"mountpoints"`
	Children    []blockDevice `json:"children"`
}

type lsblkOutput struct {
	BlockDevices []blockDevice `json:"blockdevices"`
}

// 📝 parseMounts extracts removable mount points from lsblk -J output.
// Removability is inherited: a partition on a removable device counts even
// when its own rm flag is unset.
func parseMounts(data []byte) ([]string, error) {
	var payload lsblkOutput
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, errors.Errorf("decoding lsblk JSON: %w", err)
	}

	seen := map[string]bool{}
	var walk func(node blockDevice, removable bool)
	walk = func(node blockDevice, removable bool) {
		removable = removable || bool(node.RM)

		if removable {
			var points []string
			if node.Mountpoint != nil {
				points = append(points, *node.Mountpoint)
			}
			for _, mp := range node.Mountpoints {
				if mp != nil {
					points = append(points, *mp)
				}
			}
			for _, mp := range points {
				if mp != "" && mp != "/" && mp != "[SWAP]" {
					seen[mp] = true
				}
			}
		}

		for _, child := range node.Children {
			walk(child, removable)
		}
	}
	for _, dev := range payload.BlockDevices {
		walk(dev, false)
	}

	mounts := make([]string, 0, len(seen))
	for mp := range seen {
		mounts = append(mounts, mp)
	}
	sort.Strings(mounts)
	return mounts, nil
}
