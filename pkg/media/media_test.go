package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMounts(t *testing.T) {
	tests := []struct {
		name string
		json string
		want []string
	}{
		{
			name: "removable_partition_inherits_flag",
			json: `{"blockdevices": [
				{"name": "sda", "rm": false, "mountpoint": null, "children": [
					{"name": "sda1", "rm": false, "mountpoint": "/"}
				]},
				{"name": "sdb", "rm": true, "mountpoint": null, "children": [
					{"name": "sdb1", "rm": false, "mountpoint": "/media/sdcard"}
				]}
			]}`,
			want: []string{"/media/sdcard"},
		},
		{
			name: "mountpoints_list_and_dedup",
			json: `{"blockdevices": [
				{"name": "sdb", "rm": true,
				 "mountpoint": "/media/card",
				 "mountpoints": ["/media/card", null, "/run/media/card2"]}
			]}`,
			want: []string{"/media/card", "/run/media/card2"},
		},
		{
			name: "root_and_swap_excluded",
			json: `{"blockdevices": [
				{"name": "sdb", "rm": true, "mountpoint": "/"},
				{"name": "sdc", "rm": true, "mountpoint": "[SWAP]"}
			]}`,
			want: []string{},
		},
		{
			name: "string_rm_flag_from_older_lsblk",
			json: `{"blockdevices": [
				{"name": "sdb", "rm": "1", "mountpoint": "/media/old"}
			]}`,
			want: []string{"/media/old"},
		},
		{
			name: "nothing_removable",
			json: `{"blockdevices": [
				{"name": "sda", "rm": false, "mountpoint": "/"}
			]}`,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseMounts([]byte(tt.json))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMounts_BadJSON(t *testing.T) {
	_, err := parseMounts([]byte("not json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding lsblk JSON")
}
