package transfer

import (
	"fmt"
	"path"
	"strings"
)

// 🏷️ nameRegistry tracks filenames already claimed per remote directory
// during this run. It knows nothing about names that existed remotely before
// the run started — re-runs will not merge with prior-run files of the same
// name. That scope is deliberate; see DESIGN.md.
type nameRegistry map[dirKey]map[string]struct{}

// resolve claims a collision-free filename for desired inside (share,
// remoteDir). The first claim keeps the original name; later claims get a
// numeric disambiguator before the extension: stem_1.ext, stem_2.ext, ...
// Never returns the same name twice for the same directory in one run.
func (r nameRegistry) resolve(shareName, remoteDir, desired string) string {
	key := dirKey{share: shareName, path: remoteDir}
	used, ok := r[key]
	if !ok {
		used = map[string]struct{}{}
		r[key] = used
	}

	ext := path.Ext(desired)
	stem := strings.TrimSuffix(desired, ext)

	candidate := desired
	for counter := 1; ; counter++ {
		if _, taken := used[candidate]; !taken {
			break
		}
		candidate = fmt.Sprintf("%s_%d%s", stem, counter, ext)
	}

	used[candidate] = struct{}{}
	return candidate
}
